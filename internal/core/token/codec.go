// Package token issues and decodes the two kinds of signed tokens the
// system uses: auth tokens proving a session and confirmation tokens
// proving email ownership. Each kind is signed with its own key, so a
// token issued for one purpose never verifies for the other.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trackhub/project-manager/internal/core/domain"
)

// Config carries the signing material and expiry arithmetic. Expiry is
// issued-at + Validity × the per-purpose multiplier; none of it is
// hardcoded.
type Config struct {
	SigningKey        string
	ConfirmationKey   string
	Validity          time.Duration
	AuthMultiplier    int
	ConfirmMultiplier int
	AuthoritiesKey    string
	Delimiter         string
}

// Codec is stateless and safe for concurrent use.
type Codec struct {
	cfg Config
}

func NewCodec(cfg Config) *Codec {
	if cfg.AuthoritiesKey == "" {
		cfg.AuthoritiesKey = "authorities"
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = ","
	}
	if cfg.AuthMultiplier <= 0 {
		cfg.AuthMultiplier = 1
	}
	if cfg.ConfirmMultiplier <= 0 {
		cfg.ConfirmMultiplier = 1
	}
	return &Codec{cfg: cfg}
}

// IssueAuth signs a session token for username carrying the given
// authorities joined by the configured delimiter.
func (c *Codec) IssueAuth(username string, authorities []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":               username,
		c.cfg.AuthoritiesKey: strings.Join(authorities, c.cfg.Delimiter),
		"iat":               now.Unix(),
		"exp":               now.Add(c.cfg.Validity * time.Duration(c.cfg.AuthMultiplier)).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(c.cfg.SigningKey))
}

// IssueConfirm signs an email-confirmation token whose subject is the
// user id.
func (c *Codec) IssueConfirm(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(c.cfg.Validity * time.Duration(c.cfg.ConfirmMultiplier)).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(c.cfg.ConfirmationKey))
}

// DecodeAuth verifies a session token and returns its subject username
// and the authorities it carries.
func (c *Codec) DecodeAuth(raw string) (string, []string, error) {
	claims, err := c.decode(raw, c.cfg.SigningKey)
	if err != nil {
		return "", nil, err
	}

	subject, _ := claims["sub"].(string)
	joined, _ := claims[c.cfg.AuthoritiesKey].(string)
	var authorities []string
	if joined != "" {
		authorities = strings.Split(joined, c.cfg.Delimiter)
	}
	return subject, authorities, nil
}

// DecodeConfirm verifies a confirmation token and returns the user id it
// was issued for.
func (c *Codec) DecodeConfirm(raw string) (string, error) {
	claims, err := c.decode(raw, c.cfg.ConfirmationKey)
	if err != nil {
		return "", err
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", domain.ErrTokenSignature
	}
	return subject, nil
}

func (c *Codec) decode(raw, key string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(key), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("decode token: %w", domain.ErrTokenExpired)
		}
		return nil, fmt.Errorf("decode token: %w", domain.ErrTokenSignature)
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenSignature
	}
	return claims, nil
}
