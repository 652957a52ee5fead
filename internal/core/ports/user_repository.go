package ports

import (
	"context"

	"github.com/trackhub/project-manager/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Finders return
// domain.ErrUserNotFound on miss; rows are soft-deleted via Update, never
// removed.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByRole returns any one user holding the given role.
	FindByRole(ctx context.Context, role domain.Role) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
}
