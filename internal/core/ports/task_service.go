package ports

import (
	"context"
	"time"

	"github.com/trackhub/project-manager/internal/core/domain"
)

// TaskUpdateInput replaces a task's title, description and deadline.
type TaskUpdateInput struct {
	Title       string
	Description string
	ExpiresAt   time.Time
}

// TaskListFilter mirrors ProjectListFilter and adds the optional
// completed-flag filter.
type TaskListFilter struct {
	SortBy       string
	IssuedAfter  time.Time
	IssuedBefore time.Time
	Completed    *bool
}

// TaskService defines task use cases. Task visibility inherits the
// parent project's visibility: an invisible project makes every task in
// it report not-found.
type TaskService interface {
	Create(ctx context.Context, actor *domain.User, projectID string, in TaskCreateInput) (*domain.Task, error)
	Get(ctx context.Context, actor *domain.User, projectID, taskID string) (*domain.Task, error)
	List(ctx context.Context, actor *domain.User, projectID string, filter TaskListFilter) ([]domain.Task, error)
	Update(ctx context.Context, actor *domain.User, projectID, taskID string, in TaskUpdateInput) (*domain.Task, error)
	Delete(ctx context.Context, actor *domain.User, projectID, taskID string) error
	Complete(ctx context.Context, actor *domain.User, projectID, taskID string) (*domain.Task, error)
}
