package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/yukikurage/resource-management-api/internal/models"
)

// Ref is a reference to another record. When Resolve is false it marshals
// to the bare id string. When Resolve is true it marshals to the expanded
// summary, or null if the referenced record no longer exists.
type Ref[T any] struct {
	ID       string
	Resolve  bool
	Expanded *T
}

// MarshalJSON implements json.Marshaler
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if !r.Resolve {
		return json.Marshal(r.ID)
	}
	return json.Marshal(r.Expanded)
}

// UnmarshalJSON accepts every form produced by MarshalJSON.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = Ref[T]{Resolve: true}
		return nil
	case len(data) > 0 && data[0] == '"':
		*r = Ref[T]{}
		return json.Unmarshal(data, &r.ID)
	}

	var head struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	var expanded T
	if err := json.Unmarshal(data, &expanded); err != nil {
		return err
	}
	*r = Ref[T]{ID: head.ID, Resolve: true, Expanded: &expanded}
	return nil
}

// EngineerSummary is the expanded form of an assignment's engineer.
type EngineerSummary struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// ProjectSummary is the expanded form of an assignment's project.
type ProjectSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssignmentDTO represents an assignment in API responses
type AssignmentDTO struct {
	ID                   string               `json:"id"`
	EngineerID           Ref[EngineerSummary] `json:"engineerId"`
	ProjectID            Ref[ProjectSummary]  `json:"projectId"`
	AllocationPercentage int                  `json:"allocationPercentage"`
	StartDate            time.Time            `json:"startDate"`
	EndDate              *time.Time           `json:"endDate,omitempty"`
	Role                 string               `json:"role"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

// ToAssignmentDTO converts an Assignment model. With expand set, the
// engineer and project references are rendered from the loaded relations;
// a relation that was not found renders as null.
func ToAssignmentDTO(a models.Assignment, expand bool) AssignmentDTO {
	dto := AssignmentDTO{
		ID:                   a.ID,
		EngineerID:           Ref[EngineerSummary]{ID: a.EngineerID, Resolve: expand},
		ProjectID:            Ref[ProjectSummary]{ID: a.ProjectID, Resolve: expand},
		AllocationPercentage: a.AllocationPercentage,
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		Role:                 a.Role,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
	if !expand {
		return dto
	}

	if a.Engineer != nil {
		dto.EngineerID.Expanded = &EngineerSummary{
			ID:     a.Engineer.ID,
			Name:   a.Engineer.Name,
			Skills: nonNil(a.Engineer.Skills),
		}
	}
	if a.Project != nil {
		dto.ProjectID.Expanded = &ProjectSummary{ID: a.Project.ID, Name: a.Project.Name}
	}

	return dto
}

// ToAssignmentDTOs converts a slice of assignments
func ToAssignmentDTOs(assignments []models.Assignment, expand bool) []AssignmentDTO {
	out := make([]AssignmentDTO, len(assignments))
	for i, a := range assignments {
		out[i] = ToAssignmentDTO(a, expand)
	}
	return out
}

// CapacityDTO reports how much of an engineer's capacity is still free.
// AvailableCapacity is negative when the engineer is over-allocated.
type CapacityDTO struct {
	Engineer          string `json:"engineer"`
	AvailableCapacity int    `json:"availableCapacity"`
	MaxCapacity       int    `json:"maxCapacity"`
	AllocatedCapacity int    `json:"allocatedCapacity"`
}
