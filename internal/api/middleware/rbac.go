package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trackhub/project-manager/internal/core/domain"
)

// RBAC admits only authenticated principals holding one of the allowed
// roles. Anonymous requests get 401, authenticated ones with the wrong
// role get 403.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(PrincipalKey).(*domain.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
