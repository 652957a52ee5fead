package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/trackhub/project-manager/internal/core/access"
	"github.com/trackhub/project-manager/internal/core/domain"
	"github.com/trackhub/project-manager/internal/core/ports"
)

// TaskService implements task use cases. Every operation first resolves
// the parent project under the actor's visibility scope, so a task in an
// invisible project is indistinguishable from a missing one.
type TaskService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.ProjectRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) visibleProject(ctx context.Context, actor *domain.User, projectID string) (*domain.Project, error) {
	return s.repo.FindVisible(ctx, projectID, access.ScopeFor(actor))
}

// Create appends a task to a project visible to actor.
func (s *TaskService) Create(ctx context.Context, actor *domain.User, projectID string, in ports.TaskCreateInput) (*domain.Task, error) {
	project, err := s.visibleProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		IssuedAt:    time.Now().UTC(),
		ExpiresAt:   in.ExpiresAt,
	}
	created, err := s.repo.AppendTask(ctx, project.ID, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", project.ID).Str("task_id", created.ID).Msg("task created")
	return created, nil
}

// Get returns the task if its project is visible to actor and the task
// itself is not deleted.
func (s *TaskService) Get(ctx context.Context, actor *domain.User, projectID, taskID string) (*domain.Task, error) {
	project, err := s.visibleProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	task, ok := project.Task(taskID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// List returns the project's non-deleted tasks with the optional sort,
// issued-at range and completed filter applied.
func (s *TaskService) List(ctx context.Context, actor *domain.User, projectID string, filter ports.TaskListFilter) ([]domain.Task, error) {
	project, err := s.visibleProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	tasks := project.ActiveTasks()
	switch filter.SortBy {
	case domain.SortTitleAsc:
		sort.Slice(tasks, func(i, j int) bool { return tasks[i].Title < tasks[j].Title })
	case domain.SortTitleDesc:
		sort.Slice(tasks, func(i, j int) bool { return tasks[i].Title > tasks[j].Title })
	}

	filtered := tasks[:0]
	for _, t := range tasks {
		if !filter.IssuedAfter.IsZero() && !t.IssuedAt.After(filter.IssuedAfter) {
			continue
		}
		if !filter.IssuedBefore.IsZero() && !t.IssuedAt.Before(filter.IssuedBefore) {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered, nil
}

// Update replaces the task's title, description and deadline.
func (s *TaskService) Update(ctx context.Context, actor *domain.User, projectID, taskID string, in ports.TaskUpdateInput) (*domain.Task, error) {
	project, err := s.visibleProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	task, ok := project.Task(taskID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	task.Title = in.Title
	task.Description = in.Description
	task.ExpiresAt = in.ExpiresAt
	if err := s.repo.UpdateTask(ctx, project.ID, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete soft-deletes the task. Unlike the read paths this resolves the
// project without owner scoping so a regular user touching a foreign
// project gets the distinct owner-mismatch error.
func (s *TaskService) Delete(ctx context.Context, actor *domain.User, projectID, taskID string) error {
	project, err := s.repo.FindActive(ctx, projectID)
	if err != nil {
		return err
	}
	if !access.CanMutate(actor, project.OwnerID) {
		s.logger.Warn().
			Str("project_id", projectID).
			Str("actor_id", actor.ID).
			Msg("task deletion denied")
		return domain.ErrOwnerMismatch
	}

	if _, ok := project.Task(taskID); !ok {
		return domain.ErrTaskNotFound
	}
	if err := s.repo.MarkTaskDeleted(ctx, project.ID, taskID); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", project.ID).Str("task_id", taskID).Msg("task deleted")
	return nil
}

// Complete marks the task completed.
func (s *TaskService) Complete(ctx context.Context, actor *domain.User, projectID, taskID string) (*domain.Task, error) {
	project, err := s.visibleProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	task, ok := project.Task(taskID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	if err := s.repo.CompleteTask(ctx, project.ID, taskID); err != nil {
		return nil, err
	}
	task.Completed = true
	s.logger.Info().Str("project_id", project.ID).Str("task_id", taskID).Msg("task completed")
	return task, nil
}
