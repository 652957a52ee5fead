package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trackhub/project-manager/internal/api/middleware"
	"github.com/trackhub/project-manager/internal/core/domain"
)

// currentUser extracts the principal the Auth middleware resolved. The
// middleware degrades silently to anonymous, so the 401 for protected
// routes is produced here.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.PrincipalKey).(*domain.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}
