package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/resource-management-api/internal/models"
	"github.com/yukikurage/resource-management-api/internal/repository"
)

var ErrEngineerNotFound = errors.New("engineer not found")

// EngineerService handles engineer listing and capacity
type EngineerService struct {
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
}

// NewEngineerService creates a new EngineerService
func NewEngineerService(userRepo repository.UserRepository, assignmentRepo repository.AssignmentRepository) *EngineerService {
	return &EngineerService{
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
	}
}

// ListEngineers returns every user with the engineer role
func (s *EngineerService) ListEngineers(ctx context.Context) ([]models.User, error) {
	engineers, err := s.userRepo.ListByRole(ctx, models.RoleEngineer)
	if err != nil {
		return nil, fmt.Errorf("failed to list engineers: %w", err)
	}
	return engineers, nil
}

// Capacity is the allocation summary of one engineer.
type Capacity struct {
	Engineer  models.User
	Max       int
	Allocated int
	Available int
}

// Capacity computes the engineer's allocated and remaining capacity.
func (s *EngineerService) Capacity(ctx context.Context, engineerID string, asOf *time.Time) (*Capacity, error) {
	engineer, err := s.userRepo.FindByID(ctx, engineerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEngineerNotFound
		}
		return nil, fmt.Errorf("failed to find engineer: %w", err)
	}

	assignments, err := s.assignmentRepo.List(ctx, repository.AssignmentFilter{EngineerID: engineer.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return &Capacity{
		Engineer:  *engineer,
		Max:       engineer.MaxCapacity,
		Allocated: AllocatedCapacity(assignments, asOf),
		Available: AvailableCapacity(engineer.MaxCapacity, assignments, asOf),
	}, nil
}
