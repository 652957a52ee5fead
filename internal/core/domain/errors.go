package domain

import "errors"

// Sentinel errors raised at the point of detection and mapped to HTTP
// status codes once, at the API boundary.
var (
	ErrUserNotFound              = errors.New("user not found")
	ErrUserExists                = errors.New("user already exists")
	ErrUserAlreadyActivated      = errors.New("user is already activated")
	ErrUserNotActivatedOrDeleted = errors.New("user is not activated or deleted")
	ErrBadCredentials            = errors.New("bad credentials")
	ErrSelfDeletion              = errors.New("user cannot delete himself")
	ErrTooManyAttempts           = errors.New("too many sign-in attempts")

	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	// ErrOwnerMismatch is raised on project/task mutation paths when a
	// regular user targets a project owned by someone else. Read paths
	// deliberately report ErrProjectNotFound instead, so probing cannot
	// reveal that a foreign project exists.
	ErrOwnerMismatch = errors.New("project is owned by another user")

	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("invalid token signature")
)
