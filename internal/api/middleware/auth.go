package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trackhub/project-manager/internal/core/ports"
	"github.com/trackhub/project-manager/internal/core/token"
)

// PrincipalKey is the echo context key the resolved *domain.User is
// stored under.
const PrincipalKey = "principal"

// Auth resolves the bearer token into a user principal. Resolution
// degrades to anonymous instead of rejecting: a missing, malformed or
// unverifiable token simply leaves no principal in the context, and the
// protected handlers answer 401 themselves. An already-resolved
// principal is never overwritten.
func Auth(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Get(PrincipalKey) != nil {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			username, _, err := codec.DecodeAuth(parts[1])
			if err != nil || username == "" {
				return next(c)
			}

			user, err := users.FindByUsername(c.Request().Context(), username)
			if err != nil || !user.Authenticatable() {
				return next(c)
			}

			c.Set(PrincipalKey, user)
			return next(c)
		}
	}
}
