package ports

import (
	"context"
	"time"

	"github.com/trackhub/project-manager/internal/core/domain"
)

// TaskCreateInput carries the data for a single task inside a project
// create or update request.
type TaskCreateInput struct {
	Title       string
	Description string
	ExpiresAt   time.Time
}

// ProjectCreateInput carries a new project with its initial tasks.
type ProjectCreateInput struct {
	Title       string
	Description string
	Tasks       []TaskCreateInput
}

// ProjectUpdateInput replaces a project's title, description and task
// set.
type ProjectUpdateInput struct {
	Title       string
	Description string
	Tasks       []TaskCreateInput
}

// ProjectListFilter holds the optional sort and issued-at range applied
// after the visibility filter. Zero times mean no bound; bounds are
// exclusive.
type ProjectListFilter struct {
	SortBy       string // domain.SortTitleAsc or domain.SortTitleDesc
	IssuedAfter  time.Time
	IssuedBefore time.Time
}

// ProjectService defines ownership-scoped project use cases. Every
// operation takes the acting user explicitly; there is no ambient
// current-user state.
type ProjectService interface {
	Create(ctx context.Context, actor *domain.User, in ProjectCreateInput) (*domain.Project, error)
	Get(ctx context.Context, actor *domain.User, projectID string) (*domain.Project, error)
	List(ctx context.Context, actor *domain.User, filter ProjectListFilter) ([]*domain.Project, error)
	Update(ctx context.Context, actor *domain.User, projectID string, in ProjectUpdateInput) (*domain.Project, error)
	Delete(ctx context.Context, actor *domain.User, projectID string) error
}
