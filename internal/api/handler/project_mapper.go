package handler

import (
	"github.com/trackhub/project-manager/internal/core/domain"
	"github.com/trackhub/project-manager/internal/core/ports"
)

func toTaskInputs(payloads []taskPayload) []ports.TaskCreateInput {
	inputs := make([]ports.TaskCreateInput, 0, len(payloads))
	for _, p := range payloads {
		inputs = append(inputs, ports.TaskCreateInput{
			Title:       p.Title,
			Description: p.Description,
			ExpiresAt:   p.ExpiresAt,
		})
	}
	return inputs
}

func toTaskResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IssuedAt:    t.IssuedAt,
		ExpiresAt:   t.ExpiresAt,
		Completed:   t.Completed,
	}
}

func toTaskResponses(tasks []domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

// toProjectResponse renders a project for the API; soft-deleted tasks
// are never serialized.
func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		IssuedAt:    p.IssuedAt,
		Tasks:       toTaskResponses(p.ActiveTasks()),
	}
}

func toProjectResponses(projects []*domain.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}
