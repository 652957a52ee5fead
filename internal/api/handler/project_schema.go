package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trackhub/project-manager/internal/core/domain"
)

// --- Request / Response types ---

type taskPayload struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type createProjectRequest struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	Tasks       []taskPayload `json:"tasks" validate:"dive"`
}

type updateProjectRequest struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	Tasks       []taskPayload `json:"tasks" validate:"dive"`
}

type createTaskRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type updateTaskRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Completed   bool      `json:"completed"`
}

type projectResponse struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"owner_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IssuedAt    time.Time      `json:"issued_at"`
	Tasks       []taskResponse `json:"tasks"`
}

// --- Query parsing ---

type listQuery struct {
	SortBy       string
	IssuedAfter  time.Time
	IssuedBefore time.Time
}

// parseListQuery reads the shared list query parameters: sort_by plus
// the exclusive issued_after / issued_before bounds (RFC 3339).
func parseListQuery(c echo.Context) (listQuery, error) {
	var q listQuery

	switch sortBy := c.QueryParam("sort_by"); sortBy {
	case "", domain.SortTitleAsc, domain.SortTitleDesc:
		q.SortBy = sortBy
	default:
		return q, echo.NewHTTPError(http.StatusBadRequest, "sort_by must be title_asc or title_desc")
	}

	var err error
	if q.IssuedAfter, err = parseTimeParam(c, "issued_after"); err != nil {
		return q, err
	}
	if q.IssuedBefore, err = parseTimeParam(c, "issued_before"); err != nil {
		return q, err
	}
	return q, nil
}

func parseTimeParam(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be an RFC 3339 timestamp")
	}
	return ts, nil
}
