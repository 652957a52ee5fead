package ports

import (
	"context"

	"github.com/trackhub/project-manager/internal/core/access"
	"github.com/trackhub/project-manager/internal/core/domain"
)

// ProjectRepository defines persistence for projects and their embedded
// tasks. Tasks live inside the project document, so creating a project
// with its tasks is a single atomic write.
//
// Scoped finders compose the access scope into the query: deleted rows
// are always excluded, and a restricted scope additionally filters by
// owner, so unauthorized rows never leave the store.
type ProjectRepository interface {
	// Create inserts the project with its tasks and assigns all ids.
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	// FindVisible returns the project the scope may see, or
	// domain.ErrProjectNotFound when absent, deleted or out of scope.
	FindVisible(ctx context.Context, id string, scope access.Scope) (*domain.Project, error)
	// FindActive returns the project by id ignoring ownership, still
	// excluding deleted rows. Mutation paths use it so an ownership
	// violation can be reported distinctly from absence.
	FindActive(ctx context.Context, id string) (*domain.Project, error)
	ListVisible(ctx context.Context, scope access.Scope) ([]*domain.Project, error)
	// ReplaceContent overwrites title, description and the task set.
	ReplaceContent(ctx context.Context, project *domain.Project) error
	MarkDeleted(ctx context.Context, id string) error

	AppendTask(ctx context.Context, projectID string, task *domain.Task) (*domain.Task, error)
	UpdateTask(ctx context.Context, projectID string, task *domain.Task) error
	MarkTaskDeleted(ctx context.Context, projectID, taskID string) error
	CompleteTask(ctx context.Context, projectID, taskID string) error
}
