package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/trackhub/project-manager/internal/core/access"
	"github.com/trackhub/project-manager/internal/core/domain"
	"github.com/trackhub/project-manager/internal/core/ports"
	"github.com/trackhub/project-manager/internal/core/token"
)

// SignInLimiter abstracts the sign-in throttle (Redis).
type SignInLimiter interface {
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// UserService implements registration, confirmation, sign-in and account
// administration.
type UserService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	codec    *token.Codec
	notifier ports.Notifier
	limiter  SignInLimiter
	logger   zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	codec *token.Codec,
	notifier ports.Notifier,
	limiter SignInLimiter,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		codec:    codec,
		notifier: notifier,
		limiter:  limiter,
		logger:   logger,
	}
}

// SignUp registers a new inactive account, stores its confirmation token
// and notifies the administrator. Notification failures do not fail the
// sign-up.
func (s *UserService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("sign up: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	confirmToken, err := s.codec.IssueConfirm(created.ID)
	if err != nil {
		return nil, fmt.Errorf("sign up: issue confirmation token: %w", err)
	}
	created.ConfirmationToken = confirmToken
	if err := s.repo.Update(ctx, created); err != nil {
		return nil, err
	}

	s.notifyAdmin(ctx, created.Username, confirmToken)

	s.logger.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("account registered")
	return created, nil
}

// notifyAdmin mails the pending confirmation token to the administrator
// account. A missing admin or a delivery error is logged and otherwise
// ignored.
func (s *UserService) notifyAdmin(ctx context.Context, username, confirmToken string) {
	admin, err := s.repo.FindByRole(ctx, domain.RoleAdmin)
	if err != nil {
		s.logger.Warn().Err(err).Msg("no admin account to notify about sign-up")
		return
	}
	subject := fmt.Sprintf("New account pending confirmation: %s", username)
	body := "A new account is awaiting confirmation. Confirmation token: " + confirmToken
	if err := s.notifier.Send(admin.Email, subject, body); err != nil {
		s.logger.Warn().Err(err).Str("to", admin.Email).Msg("failed to send confirmation mail")
	}
}

// Confirm activates the account the token was issued for. Token decode
// failures (expired, bad signature) propagate unchanged.
func (s *UserService) Confirm(ctx context.Context, confirmToken string) error {
	userID, err := s.codec.DecodeConfirm(confirmToken)
	if err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.ConfirmationToken == "" {
		return domain.ErrUserAlreadyActivated
	}

	user.ConfirmationToken = ""
	user.Activated = true
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.notifier.Send(user.Email, "Account confirmed", "Your account has been activated. You can sign in now."); err != nil {
		s.logger.Warn().Err(err).Str("to", user.Email).Msg("failed to send activation mail")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("account activated")
	return nil
}

// SignIn verifies credentials and returns a signed auth token carrying
// the user's role as its sole authority.
func (s *UserService) SignIn(ctx context.Context, username, password string) (string, error) {
	throttled, err := s.limiter.TooManyFailures(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("sign-in throttle check failed, proceeding")
	} else if throttled {
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if !user.Authenticatable() {
		s.logger.Warn().Str("username", username).Msg("sign-in attempt on non-activated or deleted account")
		return "", domain.ErrUserNotActivatedOrDeleted
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		if err := s.limiter.RecordFailure(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("failed to record sign-in failure")
		}
		return "", domain.ErrBadCredentials
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to reset sign-in throttle")
	}

	authToken, err := s.codec.IssueAuth(user.Username, []string{string(user.Role)})
	if err != nil {
		return "", fmt.Errorf("sign in: issue auth token: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("signed in")
	return authToken, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// DeleteUser soft-deletes the target account. Self-deletion always
// fails, regardless of role; repeating a deletion is a no-op beyond the
// flag already being set.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, id string) error {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !access.CanDeleteUser(actor, target.ID) {
		if actor != nil && actor.ID == target.ID {
			return domain.ErrSelfDeletion
		}
		return domain.ErrUserNotFound
	}

	target.Deleted = true
	target.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, target); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", target.ID).Msg("account deleted")
	return nil
}
