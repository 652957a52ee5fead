package token

import (
	"errors"
	"testing"
	"time"

	"github.com/trackhub/project-manager/internal/core/domain"
)

func testCodec() *Codec {
	return NewCodec(Config{
		SigningKey:        "auth-key",
		ConfirmationKey:   "confirm-key",
		Validity:          time.Minute,
		AuthMultiplier:    60,
		ConfirmMultiplier: 120,
		AuthoritiesKey:    "authorities",
		Delimiter:         ",",
	})
}

func TestCodec_AuthRoundTrip(t *testing.T) {
	c := testCodec()

	raw, err := c.IssueAuth("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("IssueAuth: %v", err)
	}

	subject, authorities, err := c.DecodeAuth(raw)
	if err != nil {
		t.Fatalf("DecodeAuth: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected subject alice, got %q", subject)
	}
	if len(authorities) != 1 || authorities[0] != "USER" {
		t.Fatalf("unexpected authorities: %v", authorities)
	}
}

func TestCodec_AuthoritiesDelimiter(t *testing.T) {
	c := NewCodec(Config{
		SigningKey:      "auth-key",
		ConfirmationKey: "confirm-key",
		Validity:        time.Minute,
		AuthMultiplier:  1,
		Delimiter:       ";",
	})

	raw, err := c.IssueAuth("bob", []string{"USER", "ADMIN"})
	if err != nil {
		t.Fatalf("IssueAuth: %v", err)
	}
	_, authorities, err := c.DecodeAuth(raw)
	if err != nil {
		t.Fatalf("DecodeAuth: %v", err)
	}
	if len(authorities) != 2 || authorities[0] != "USER" || authorities[1] != "ADMIN" {
		t.Fatalf("unexpected authorities: %v", authorities)
	}
}

func TestCodec_ConfirmRoundTrip(t *testing.T) {
	c := testCodec()

	raw, err := c.IssueConfirm("507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("IssueConfirm: %v", err)
	}
	id, err := c.DecodeConfirm(raw)
	if err != nil {
		t.Fatalf("DecodeConfirm: %v", err)
	}
	if id != "507f1f77bcf86cd799439011" {
		t.Fatalf("unexpected subject: %q", id)
	}
}

func TestCodec_Expired(t *testing.T) {
	c := NewCodec(Config{
		SigningKey:      "auth-key",
		ConfirmationKey: "confirm-key",
		Validity:        -time.Minute,
		AuthMultiplier:  1,
	})

	raw, err := c.IssueAuth("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("IssueAuth: %v", err)
	}
	if _, _, err := c.DecodeAuth(raw); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_WrongKey(t *testing.T) {
	c := testCodec()
	other := NewCodec(Config{
		SigningKey:      "different-key",
		ConfirmationKey: "confirm-key",
		Validity:        time.Minute,
		AuthMultiplier:  1,
	})

	raw, err := c.IssueAuth("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("IssueAuth: %v", err)
	}
	if _, _, err := other.DecodeAuth(raw); !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestCodec_PurposeKeysAreDistinct(t *testing.T) {
	c := testCodec()

	confirm, err := c.IssueConfirm("42")
	if err != nil {
		t.Fatalf("IssueConfirm: %v", err)
	}
	if _, _, err := c.DecodeAuth(confirm); !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("confirm token accepted as auth token: %v", err)
	}

	auth, err := c.IssueAuth("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("IssueAuth: %v", err)
	}
	if _, err := c.DecodeConfirm(auth); !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("auth token accepted as confirm token: %v", err)
	}
}

func TestCodec_Garbage(t *testing.T) {
	c := testCodec()
	if _, _, err := c.DecodeAuth("not-a-token"); !errors.Is(err, domain.ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}
