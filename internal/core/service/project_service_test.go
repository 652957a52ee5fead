package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/trackhub/project-manager/internal/core/access"
	"github.com/trackhub/project-manager/internal/core/domain"
	"github.com/trackhub/project-manager/internal/core/ports"
)

// --- stub project repository ---

type stubProjectRepo struct {
	projects   map[string]*domain.Project
	nextID     int
	nextTaskID int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func cloneProject(p *domain.Project) *domain.Project {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Tasks = append([]domain.Task(nil), p.Tasks...)
	return &clone
}

func (r *stubProjectRepo) assignTaskIDs(tasks []domain.Task) {
	for i := range tasks {
		if tasks[i].ID == "" {
			r.nextTaskID++
			tasks[i].ID = "t" + strconv.Itoa(r.nextTaskID)
		}
	}
}

func (r *stubProjectRepo) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	p := cloneProject(project)
	r.nextID++
	p.ID = "p" + strconv.Itoa(r.nextID)
	r.assignTaskIDs(p.Tasks)
	r.projects[p.ID] = cloneProject(p)
	return p, nil
}

func (r *stubProjectRepo) FindVisible(_ context.Context, id string, scope access.Scope) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.Deleted {
		return nil, domain.ErrProjectNotFound
	}
	if scope.Restricted() && p.OwnerID != scope.OwnerID {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) FindActive(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.Deleted {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) ListVisible(_ context.Context, scope access.Scope) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.projects {
		if p.Deleted {
			continue
		}
		if scope.Restricted() && p.OwnerID != scope.OwnerID {
			continue
		}
		out = append(out, cloneProject(p))
	}
	return out, nil
}

func (r *stubProjectRepo) ReplaceContent(_ context.Context, project *domain.Project) error {
	stored, ok := r.projects[project.ID]
	if !ok || stored.Deleted {
		return domain.ErrProjectNotFound
	}
	r.assignTaskIDs(project.Tasks)
	stored.Title = project.Title
	stored.Description = project.Description
	stored.Tasks = append([]domain.Task(nil), project.Tasks...)
	return nil
}

func (r *stubProjectRepo) MarkDeleted(_ context.Context, id string) error {
	p, ok := r.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.Deleted = true
	return nil
}

func (r *stubProjectRepo) AppendTask(_ context.Context, projectID string, task *domain.Task) (*domain.Task, error) {
	p, ok := r.projects[projectID]
	if !ok || p.Deleted {
		return nil, domain.ErrProjectNotFound
	}
	t := *task
	r.nextTaskID++
	t.ID = "t" + strconv.Itoa(r.nextTaskID)
	p.Tasks = append(p.Tasks, t)
	return &t, nil
}

func (r *stubProjectRepo) taskRef(projectID, taskID string) (*domain.Task, error) {
	p, ok := r.projects[projectID]
	if !ok || p.Deleted {
		return nil, domain.ErrProjectNotFound
	}
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return &p.Tasks[i], nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubProjectRepo) UpdateTask(_ context.Context, projectID string, task *domain.Task) error {
	stored, err := r.taskRef(projectID, task.ID)
	if err != nil {
		return err
	}
	*stored = *task
	return nil
}

func (r *stubProjectRepo) MarkTaskDeleted(_ context.Context, projectID, taskID string) error {
	stored, err := r.taskRef(projectID, taskID)
	if err != nil {
		return err
	}
	stored.Deleted = true
	return nil
}

func (r *stubProjectRepo) CompleteTask(_ context.Context, projectID, taskID string) error {
	stored, err := r.taskRef(projectID, taskID)
	if err != nil {
		return err
	}
	stored.Completed = true
	return nil
}

// --- fixture ---

var (
	userAlice = &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser}
	userBob   = &domain.User{ID: "u2", Username: "bob", Role: domain.RoleUser}
	userAdmin = &domain.User{ID: "u9", Username: "root", Role: domain.RoleAdmin}
)

func newProjectFixture() (*stubProjectRepo, *ProjectService) {
	repo := newStubProjectRepo()
	return repo, NewProjectService(repo, zerolog.Nop())
}

func mustCreateProject(t *testing.T, svc *ProjectService, actor *domain.User, title string, tasks ...ports.TaskCreateInput) *domain.Project {
	t.Helper()
	p, err := svc.Create(context.Background(), actor, ports.ProjectCreateInput{
		Title:       title,
		Description: title + " description",
		Tasks:       tasks,
	})
	if err != nil {
		t.Fatalf("create project %q: %v", title, err)
	}
	return p
}

// --- tests ---

func TestProjectService_Create(t *testing.T) {
	_, svc := newProjectFixture()
	before := time.Now().UTC()

	p := mustCreateProject(t, svc, userAlice, "P1", ports.TaskCreateInput{
		Title:     "T1",
		ExpiresAt: time.Now().UTC().Add(48 * time.Hour),
	})

	if p.OwnerID != userAlice.ID {
		t.Fatalf("expected owner %s, got %s", userAlice.ID, p.OwnerID)
	}
	if p.ID == "" {
		t.Fatalf("expected project id assigned")
	}
	if len(p.Tasks) != 1 || p.Tasks[0].ID == "" {
		t.Fatalf("expected one task with id, got %+v", p.Tasks)
	}
	if p.IssuedAt.Before(before) || p.Tasks[0].IssuedAt.Before(before) {
		t.Fatalf("issued_at not set to now")
	}
	if p.Tasks[0].Completed {
		t.Fatalf("new task must not be completed")
	}
}

func TestProjectService_Get_OwnershipVisibility(t *testing.T) {
	_, svc := newProjectFixture()
	p := mustCreateProject(t, svc, userAlice, "P1")

	if _, err := svc.Get(context.Background(), userAlice, p.ID); err != nil {
		t.Fatalf("owner should see own project: %v", err)
	}
	if _, err := svc.Get(context.Background(), userBob, p.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("foreign project must report not-found, got %v", err)
	}
	if _, err := svc.Get(context.Background(), userAdmin, p.ID); err != nil {
		t.Fatalf("admin should see any project: %v", err)
	}
}

func TestProjectService_AnonymousActorSeesNothing(t *testing.T) {
	_, svc := newProjectFixture()
	p := mustCreateProject(t, svc, userAlice, "P1")

	if _, err := svc.Get(context.Background(), nil, p.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("anonymous get must report not-found, got %v", err)
	}
	projects, err := svc.List(context.Background(), nil, ports.ProjectListFilter{})
	if err != nil {
		t.Fatalf("anonymous list: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("anonymous list must be empty, got %d projects", len(projects))
	}
}

func TestProjectService_List_Scoping(t *testing.T) {
	_, svc := newProjectFixture()
	mustCreateProject(t, svc, userAlice, "Alpha")
	mustCreateProject(t, svc, userBob, "Beta")

	all, err := svc.List(context.Background(), userAdmin, ports.ProjectListFilter{})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin should see both projects, got %d", len(all))
	}

	mine, err := svc.List(context.Background(), userAlice, ports.ProjectListFilter{})
	if err != nil {
		t.Fatalf("user list: %v", err)
	}
	if len(mine) != 1 || mine[0].Title != "Alpha" {
		t.Fatalf("user should only see own project, got %+v", mine)
	}
}

func TestProjectService_List_SortAndRange(t *testing.T) {
	repo, svc := newProjectFixture()
	a := mustCreateProject(t, svc, userAlice, "Banana")
	b := mustCreateProject(t, svc, userAlice, "Apple")
	mustCreateProject(t, svc, userAlice, "Cherry")

	// push issued-at apart for the range filter
	repo.projects[a.ID].IssuedAt = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	repo.projects[b.ID].IssuedAt = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	asc, err := svc.List(context.Background(), userAlice, ports.ProjectListFilter{SortBy: domain.SortTitleAsc})
	if err != nil {
		t.Fatalf("list asc: %v", err)
	}
	if asc[0].Title != "Apple" || asc[2].Title != "Cherry" {
		t.Fatalf("bad ascending order: %v %v %v", asc[0].Title, asc[1].Title, asc[2].Title)
	}

	desc, err := svc.List(context.Background(), userAlice, ports.ProjectListFilter{SortBy: domain.SortTitleDesc})
	if err != nil {
		t.Fatalf("list desc: %v", err)
	}
	if desc[0].Title != "Cherry" {
		t.Fatalf("bad descending order: %v", desc[0].Title)
	}

	ranged, err := svc.List(context.Background(), userAlice, ports.ProjectListFilter{
		IssuedAfter:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		IssuedBefore: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("list ranged: %v", err)
	}
	if len(ranged) != 1 || ranged[0].Title != "Apple" {
		t.Fatalf("expected only the March project, got %+v", ranged)
	}
}

func TestProjectService_Update_OwnerMismatch(t *testing.T) {
	_, svc := newProjectFixture()
	p := mustCreateProject(t, svc, userAlice, "P1")

	in := ports.ProjectUpdateInput{Title: "P1v2", Tasks: []ports.TaskCreateInput{{Title: "T1"}}}

	if _, err := svc.Update(context.Background(), userBob, p.ID, in); !errors.Is(err, domain.ErrOwnerMismatch) {
		t.Fatalf("expected ErrOwnerMismatch, got %v", err)
	}

	updated, err := svc.Update(context.Background(), userAdmin, p.ID, in)
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != "P1v2" || len(updated.Tasks) != 1 {
		t.Fatalf("update not applied: %+v", updated)
	}

	if _, err := svc.Update(context.Background(), userAlice, p.ID, in); err != nil {
		t.Fatalf("owner update: %v", err)
	}
}

func TestProjectService_Delete_SoftAndIdempotent(t *testing.T) {
	repo, svc := newProjectFixture()
	p := mustCreateProject(t, svc, userAlice, "P1")

	if err := svc.Delete(context.Background(), userAlice, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if stored := repo.projects[p.ID]; stored == nil || !stored.Deleted {
		t.Fatalf("expected soft-deleted row to remain")
	}
	if _, err := svc.Get(context.Background(), userAdmin, p.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("deleted project must be invisible to everyone, got %v", err)
	}
	// second delete: row is already invisible, state unchanged
	if err := svc.Delete(context.Background(), userAlice, p.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected not-found on repeated delete, got %v", err)
	}
}

func TestProjectService_Delete_OwnerMismatch(t *testing.T) {
	_, svc := newProjectFixture()
	p := mustCreateProject(t, svc, userAlice, "P1")

	if err := svc.Delete(context.Background(), userBob, p.ID); !errors.Is(err, domain.ErrOwnerMismatch) {
		t.Fatalf("expected ErrOwnerMismatch, got %v", err)
	}
	if err := svc.Delete(context.Background(), userAdmin, p.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}
