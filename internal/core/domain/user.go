package domain

import "time"

// Role determines how far a user's visibility reaches: regular users see
// only resources they own, admins see everything that is not deleted.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User models an account. Accounts are created inactive with a pending
// confirmation token and are soft-deleted, never removed.
type User struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Role              Role      `json:"role"`
	Activated         bool      `json:"activated"`
	ConfirmationToken string    `json:"-"`
	Deleted           bool      `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Authenticatable reports whether the account may sign in: confirmed,
// activated and not soft-deleted.
func (u *User) Authenticatable() bool {
	return u.ConfirmationToken == "" && u.Activated && !u.Deleted
}
