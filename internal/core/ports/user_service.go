package ports

import (
	"context"

	"github.com/trackhub/project-manager/internal/core/domain"
)

// SignUpInput carries the data needed to register an account.
type SignUpInput struct {
	Username string
	Password string
	Email    string
}

// UserService defines account use cases: registration, email
// confirmation, sign-in and administration.
type UserService interface {
	// SignUp creates an inactive account with a pending confirmation
	// token and notifies the administrator.
	SignUp(ctx context.Context, in SignUpInput) (*domain.User, error)
	// Confirm activates the account the confirmation token was issued
	// for and clears the token.
	Confirm(ctx context.Context, confirmToken string) error
	// SignIn verifies credentials and returns a signed auth token.
	SignIn(ctx context.Context, username, password string) (string, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// DeleteUser soft-deletes the target account. The actor may never
	// target itself.
	DeleteUser(ctx context.Context, actor *domain.User, id string) error
}
