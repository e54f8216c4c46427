package dto

import (
	"time"

	"github.com/yukikurage/resource-management-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    *string              `json:"description,omitempty"`
	StartDate      time.Time            `json:"startDate"`
	EndDate        *time.Time           `json:"endDate,omitempty"`
	RequiredSkills []string             `json:"requiredSkills"`
	TeamSize       int                  `json:"teamSize"`
	Status         models.ProjectStatus `json:"status"`
	ManagerID      string               `json:"managerId"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:             project.ID,
		Name:           project.Name,
		Description:    project.Description,
		StartDate:      project.StartDate,
		EndDate:        project.EndDate,
		RequiredSkills: nonNil(project.RequiredSkills),
		TeamSize:       project.TeamSize,
		Status:         project.Status,
		ManagerID:      project.ManagerID,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectDTO(p)
	}
	return out
}
