package domain

import "time"

// Sort orders accepted by the project and task list endpoints.
const (
	SortTitleAsc  = "title_asc"
	SortTitleDesc = "title_desc"
)

// Task belongs to exactly one project and is stored embedded in it, so a
// project and its tasks are always written in one operation.
type Task struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	IssuedAt    time.Time `json:"issued_at" bson:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at" bson:"expires_at"`
	Completed   bool      `json:"completed" bson:"completed"`
	Deleted     bool      `json:"-" bson:"deleted"`
}

// Project is the aggregate root. OwnerID references the user that created
// it; visibility for regular users is restricted to their own projects.
type Project struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	IssuedAt    time.Time `json:"issued_at" bson:"issued_at"`
	Deleted     bool      `json:"-" bson:"deleted"`
	Tasks       []Task    `json:"tasks" bson:"tasks"`
}

// Task returns the embedded task with the given id, skipping soft-deleted
// entries.
func (p *Project) Task(taskID string) (*Task, bool) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID && !p.Tasks[i].Deleted {
			return &p.Tasks[i], true
		}
	}
	return nil, false
}

// ActiveTasks returns the non-deleted tasks of the project.
func (p *Project) ActiveTasks() []Task {
	out := make([]Task, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		if !t.Deleted {
			out = append(out, t)
		}
	}
	return out
}
