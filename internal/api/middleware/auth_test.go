package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trackhub/project-manager/internal/core/domain"
	"github.com/trackhub/project-manager/internal/core/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil }
func (r *stubUserRepo) Update(_ context.Context, _ *domain.User) error                 { return nil }
func (r *stubUserRepo) FindByID(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) FindByRole(_ context.Context, _ domain.Role) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) { return nil, nil }
func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func authFixture() (*token.Codec, *stubUserRepo) {
	codec := token.NewCodec(token.Config{
		SigningKey:      "auth-key",
		ConfirmationKey: "confirm-key",
		Validity:        time.Minute,
		AuthMultiplier:  60,
	})
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice": {ID: "u1", Username: "alice", Role: domain.RoleUser, Activated: true},
	}}
	return codec, repo
}

func runAuth(t *testing.T, codec *token.Codec, repo *stubUserRepo, header string) (echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(codec, repo)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return c, called
}

func TestAuth_ValidTokenResolvesPrincipal(t *testing.T) {
	codec, repo := authFixture()
	signed, err := codec.IssueAuth("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, called := runAuth(t, codec, repo, "Bearer "+signed)
	if !called {
		t.Fatalf("next not called")
	}
	user, ok := c.Get(PrincipalKey).(*domain.User)
	if !ok || user.Username != "alice" {
		t.Fatalf("principal not resolved: %v", c.Get(PrincipalKey))
	}
}

func TestAuth_MissingHeaderDegradesToAnonymous(t *testing.T) {
	codec, repo := authFixture()
	c, called := runAuth(t, codec, repo, "")
	if !called {
		t.Fatalf("anonymous request must still reach next")
	}
	if c.Get(PrincipalKey) != nil {
		t.Fatalf("expected no principal")
	}
}

func TestAuth_MalformedHeaderDegradesToAnonymous(t *testing.T) {
	codec, repo := authFixture()
	c, called := runAuth(t, codec, repo, "Token abc")
	if !called {
		t.Fatalf("next not called")
	}
	if c.Get(PrincipalKey) != nil {
		t.Fatalf("expected no principal")
	}
}

func TestAuth_BadSignatureDegradesToAnonymous(t *testing.T) {
	codec, repo := authFixture()
	other := token.NewCodec(token.Config{SigningKey: "other-key", Validity: time.Minute, AuthMultiplier: 60})
	signed, err := other.IssueAuth("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, called := runAuth(t, codec, repo, "Bearer "+signed)
	if !called {
		t.Fatalf("next not called")
	}
	if c.Get(PrincipalKey) != nil {
		t.Fatalf("expected no principal for foreign signature")
	}
}

func TestAuth_UnknownSubjectDegradesToAnonymous(t *testing.T) {
	codec, repo := authFixture()
	signed, err := codec.IssueAuth("mallory", []string{"USER"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := runAuth(t, codec, repo, "Bearer "+signed)
	if c.Get(PrincipalKey) != nil {
		t.Fatalf("expected no principal for unknown subject")
	}
}

func TestAuth_DeletedAccountDegradesToAnonymous(t *testing.T) {
	codec, repo := authFixture()
	repo.users["alice"].Deleted = true
	signed, err := codec.IssueAuth("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := runAuth(t, codec, repo, "Bearer "+signed)
	if c.Get(PrincipalKey) != nil {
		t.Fatalf("deleted account must not resolve to a principal")
	}
}
