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

// ProjectService implements ownership-scoped project use cases. All
// reads go through the access scope so regular users only ever see their
// own non-deleted projects; mutation paths fetch unscoped and report a
// distinct owner-mismatch error instead, preserving the asymmetry the
// API exposes.
type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

// Create stores a new project owned by actor together with its tasks in
// one write, so a failure never leaves a project without its tasks.
func (s *ProjectService) Create(ctx context.Context, actor *domain.User, in ports.ProjectCreateInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project := &domain.Project{
		OwnerID:     actor.ID,
		Title:       in.Title,
		Description: in.Description,
		IssuedAt:    now,
		Tasks:       buildTasks(in.Tasks, now),
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", actor.ID).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("owner_id", actor.ID).Msg("project created")
	return created, nil
}

func buildTasks(inputs []ports.TaskCreateInput, issuedAt time.Time) []domain.Task {
	tasks := make([]domain.Task, 0, len(inputs))
	for _, in := range inputs {
		tasks = append(tasks, domain.Task{
			Title:       in.Title,
			Description: in.Description,
			IssuedAt:    issuedAt,
			ExpiresAt:   in.ExpiresAt,
		})
	}
	return tasks
}

// Get returns the project if it is visible to actor. Foreign projects
// report not-found for regular users so probing cannot reveal they
// exist.
func (s *ProjectService) Get(ctx context.Context, actor *domain.User, projectID string) (*domain.Project, error) {
	return s.repo.FindVisible(ctx, projectID, access.ScopeFor(actor))
}

// List returns the projects visible to actor with the optional title
// sort and issued-at range applied after the visibility filter.
func (s *ProjectService) List(ctx context.Context, actor *domain.User, filter ports.ProjectListFilter) ([]*domain.Project, error) {
	projects, err := s.repo.ListVisible(ctx, access.ScopeFor(actor))
	if err != nil {
		return nil, err
	}

	switch filter.SortBy {
	case domain.SortTitleAsc:
		sort.Slice(projects, func(i, j int) bool { return projects[i].Title < projects[j].Title })
	case domain.SortTitleDesc:
		sort.Slice(projects, func(i, j int) bool { return projects[i].Title > projects[j].Title })
	}

	filtered := projects[:0]
	for _, p := range projects {
		if !filter.IssuedAfter.IsZero() && !p.IssuedAt.After(filter.IssuedAfter) {
			continue
		}
		if !filter.IssuedBefore.IsZero() && !p.IssuedAt.Before(filter.IssuedBefore) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// Update replaces the project's title, description and task set. The
// task set is rebuilt from scratch, resetting completion flags.
func (s *ProjectService) Update(ctx context.Context, actor *domain.User, projectID string, in ports.ProjectUpdateInput) (*domain.Project, error) {
	project, err := s.mutableProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	project.Title = in.Title
	project.Description = in.Description
	project.Tasks = buildTasks(in.Tasks, time.Now().UTC())

	if err := s.repo.ReplaceContent(ctx, project); err != nil {
		return nil, err
	}
	s.logger.Info().Str("project_id", projectID).Msg("project updated")
	return project, nil
}

// Delete soft-deletes the project. Deleting twice is a no-op: the second
// call reports not-found because deleted rows are invisible.
func (s *ProjectService) Delete(ctx context.Context, actor *domain.User, projectID string) error {
	project, err := s.mutableProject(ctx, actor, projectID)
	if err != nil {
		return err
	}

	if err := s.repo.MarkDeleted(ctx, project.ID); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", project.ID).Msg("project deleted")
	return nil
}

// mutableProject fetches the project without owner scoping and enforces
// the mutation rule: regular users touching a foreign project get the
// distinct owner-mismatch error rather than not-found.
func (s *ProjectService) mutableProject(ctx context.Context, actor *domain.User, projectID string) (*domain.Project, error) {
	project, err := s.repo.FindActive(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !access.CanMutate(actor, project.OwnerID) {
		s.logger.Warn().
			Str("project_id", projectID).
			Str("actor_id", actor.ID).
			Str("owner_id", project.OwnerID).
			Msg("project mutation denied")
		return nil, domain.ErrOwnerMismatch
	}
	return project, nil
}
