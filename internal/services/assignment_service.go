package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/resource-management-api/internal/constants"
	"github.com/yukikurage/resource-management-api/internal/events"
	"github.com/yukikurage/resource-management-api/internal/models"
	"github.com/yukikurage/resource-management-api/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrAssignmentNotFound      = errors.New("assignment not found")
	ErrAssignmentFieldsMissing = errors.New("engineer, project, allocation, start date and role are required")
	ErrInvalidAllocation       = errors.New("allocation percentage must be between 0 and 100")
)

// EventObserver is notified of every assignment event and its publish outcome.
type EventObserver interface {
	ObserveAssignmentEvent(eventType string, published bool)
}

// AssignmentService handles assignment business logic
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	publisher      events.Publisher
	observer       EventObserver
	logger         *zap.Logger
}

// NewAssignmentService creates a new AssignmentService. A nil publisher
// disables events and a nil observer disables event metrics.
func NewAssignmentService(assignmentRepo repository.AssignmentRepository, publisher events.Publisher, observer EventObserver, logger *zap.Logger) *AssignmentService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		publisher:      publisher,
		observer:       observer,
		logger:         logger.Named("assignments"),
	}
}

// ListAssignmentsInput represents filters for listing assignments
type ListAssignmentsInput struct {
	EngineerID string
	ProjectID  string
}

// CreateAssignmentInput represents input for creating an assignment
type CreateAssignmentInput struct {
	EngineerID           string
	ProjectID            string
	AllocationPercentage int
	StartDate            time.Time
	EndDate              *time.Time
	Role                 string
}

// UpdateAssignmentInput is a sparse patch; nil fields are left untouched.
type UpdateAssignmentInput struct {
	EngineerID           *string
	ProjectID            *string
	AllocationPercentage *int
	StartDate            *time.Time
	EndDate              *time.Time
	ClearEndDate         bool
	Role                 *string
}

// ListAssignments returns assignments with engineer and project expanded
func (s *AssignmentService) ListAssignments(ctx context.Context, input ListAssignmentsInput) ([]models.Assignment, error) {
	assignments, err := s.assignmentRepo.List(ctx, repository.AssignmentFilter{
		EngineerID: input.EngineerID,
		ProjectID:  input.ProjectID,
		Expand:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// GetAssignment retrieves an expanded assignment by ID
func (s *AssignmentService) GetAssignment(ctx context.Context, id string) (*models.Assignment, error) {
	return s.find(ctx, id, true)
}

// CreateAssignment stores a new assignment. Capacity is not checked here;
// over-allocation is reported by the capacity endpoint instead.
func (s *AssignmentService) CreateAssignment(ctx context.Context, input CreateAssignmentInput) (*models.Assignment, error) {
	assignment := &models.Assignment{
		ID:                   uuid.NewString(),
		EngineerID:           strings.TrimSpace(input.EngineerID),
		ProjectID:            strings.TrimSpace(input.ProjectID),
		AllocationPercentage: input.AllocationPercentage,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		Role:                 strings.TrimSpace(input.Role),
	}
	if assignment.EngineerID == "" || assignment.ProjectID == "" || assignment.Role == "" || assignment.StartDate.IsZero() {
		return nil, ErrAssignmentFieldsMissing
	}
	if err := validateAssignment(assignment); err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	created, err := s.find(ctx, assignment.ID, true)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.AssignmentCreated, *created)
	return created, nil
}

// UpdateAssignment applies the present fields of input to an assignment
func (s *AssignmentService) UpdateAssignment(ctx context.Context, id string, input UpdateAssignmentInput) (*models.Assignment, error) {
	assignment, err := s.find(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if input.EngineerID != nil {
		if assignment.EngineerID = strings.TrimSpace(*input.EngineerID); assignment.EngineerID == "" {
			return nil, ErrAssignmentFieldsMissing
		}
	}
	if input.ProjectID != nil {
		if assignment.ProjectID = strings.TrimSpace(*input.ProjectID); assignment.ProjectID == "" {
			return nil, ErrAssignmentFieldsMissing
		}
	}
	if input.AllocationPercentage != nil {
		assignment.AllocationPercentage = *input.AllocationPercentage
	}
	if input.StartDate != nil {
		assignment.StartDate = *input.StartDate
	}
	if input.ClearEndDate {
		assignment.EndDate = nil
	} else if input.EndDate != nil {
		assignment.EndDate = input.EndDate
	}
	if input.Role != nil {
		if assignment.Role = strings.TrimSpace(*input.Role); assignment.Role == "" {
			return nil, ErrAssignmentFieldsMissing
		}
	}

	if err := validateAssignment(assignment); err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	updated, err := s.find(ctx, id, true)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.AssignmentUpdated, *updated)
	return updated, nil
}

// DeleteAssignment hard deletes an assignment
func (s *AssignmentService) DeleteAssignment(ctx context.Context, id string) error {
	assignment, err := s.find(ctx, id, false)
	if err != nil {
		return err
	}

	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.publish(ctx, events.AssignmentDeleted, *assignment)
	return nil
}

func (s *AssignmentService) find(ctx context.Context, id string, expand bool) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id, expand)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	return assignment, nil
}

// publish never fails the caller; the write already happened, so the event
// is sent even if the request context is canceled.
func (s *AssignmentService) publish(ctx context.Context, eventType events.Type, assignment models.Assignment) {
	err := s.publisher.PublishAssignment(context.WithoutCancel(ctx), eventType, assignment)
	if err != nil {
		s.logger.Warn("Failed to publish assignment event",
			zap.String("event", string(eventType)),
			zap.String("assignment_id", assignment.ID),
			zap.Error(err),
		)
	}
	if s.observer != nil {
		s.observer.ObserveAssignmentEvent(string(eventType), err == nil)
	}
}

func validateAssignment(a *models.Assignment) error {
	if a.AllocationPercentage < constants.MinAllocationPercentage || a.AllocationPercentage > constants.MaxAllocationPercentage {
		return ErrInvalidAllocation
	}
	if a.EndDate != nil && a.EndDate.Before(a.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}
