package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/trackhub/project-manager/internal/core/domain"
	"github.com/trackhub/project-manager/internal/core/ports"
)

type stubUserService struct {
	signUpFn  func(ctx context.Context, in ports.SignUpInput) (*domain.User, error)
	confirmFn func(ctx context.Context, confirmToken string) error
	signInFn  func(ctx context.Context, username, password string) (string, error)
}

func (s *stubUserService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	return s.signUpFn(ctx, in)
}
func (s *stubUserService) Confirm(ctx context.Context, confirmToken string) error {
	return s.confirmFn(ctx, confirmToken)
}
func (s *stubUserService) SignIn(ctx context.Context, username, password string) (string, error) {
	return s.signInFn(ctx, username, password)
}
func (s *stubUserService) ListUsers(_ context.Context) ([]*domain.User, error) { return nil, nil }
func (s *stubUserService) GetUser(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserService) DeleteUser(_ context.Context, _ *domain.User, _ string) error {
	return nil
}

func newEchoContext(t *testing.T, method, target, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubUserService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
			if in.Username != "alice" || in.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Username: in.Username, Email: in.Email, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub)

	_, c, rec := newEchoContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","password":"longenough","email":"alice@example.com"}`)

	if err := h.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password hash must never be serialized")
	}
}

func TestAuthHandler_SignUp_ValidationFailure(t *testing.T) {
	stub := &stubUserService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	_, c, _ := newEchoContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"al","password":"short","email":"not-an-email"}`)

	err := h.SignUp(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_SignUp_Duplicate(t *testing.T) {
	stub := &stubUserService{
		signUpFn: func(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	_, c, _ := newEchoContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","password":"longenough","email":"alice@example.com"}`)

	if err := h.SignUp(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Confirm(t *testing.T) {
	confirmed := ""
	stub := &stubUserService{
		confirmFn: func(ctx context.Context, confirmToken string) error {
			confirmed = confirmToken
			return nil
		},
	}
	h := NewAuthHandler(stub)

	_, c, rec := newEchoContext(t, http.MethodGet, "/api/auth/signup/confirm?token=tok123", "")

	if err := h.Confirm(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || confirmed != "tok123" {
		t.Fatalf("confirmation not forwarded: code=%d token=%q", rec.Code, confirmed)
	}
}

func TestAuthHandler_Confirm_MissingToken(t *testing.T) {
	h := NewAuthHandler(&stubUserService{
		confirmFn: func(ctx context.Context, confirmToken string) error {
			t.Fatalf("should not be called")
			return nil
		},
	})

	_, c, _ := newEchoContext(t, http.MethodGet, "/api/auth/signup/confirm", "")

	err := h.Confirm(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	stub := &stubUserService{
		signInFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "alice" || password != "secretpw" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", nil
		},
	}
	h := NewAuthHandler(stub)

	_, c, rec := newEchoContext(t, http.MethodPost, "/api/auth/signin",
		`{"username":"alice","password":"secretpw"}`)

	if err := h.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp signInResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token123" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}
}

func TestAuthHandler_SignIn_BadCredentialsPropagates(t *testing.T) {
	stub := &stubUserService{
		signInFn: func(ctx context.Context, username, password string) (string, error) {
			return "", domain.ErrBadCredentials
		},
	}
	h := NewAuthHandler(stub)

	_, c, _ := newEchoContext(t, http.MethodPost, "/api/auth/signin",
		`{"username":"alice","password":"wrongpw"}`)

	if err := h.SignIn(c); err != domain.ErrBadCredentials {
		t.Fatalf("expected ErrBadCredentials to propagate, got %v", err)
	}
}
