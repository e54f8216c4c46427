package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/resource-management-api/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate is returned when a unique key is violated.
	ErrDuplicate = errors.New("repository: duplicate key")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// ListByRole lists users holding the given role
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)

	// Update persists every field of an existing user
	Update(ctx context.Context, user *models.User) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
}

// AssignmentRepository defines the interface for assignment data access
type AssignmentRepository interface {
	// Create creates a new assignment
	Create(ctx context.Context, assignment *models.Assignment) error

	// FindByID finds an assignment, populating Engineer and Project when expand is set
	FindByID(ctx context.Context, id string, expand bool) (*models.Assignment, error)

	// List retrieves assignments matching the filter in creation order
	List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error)

	// Update persists every field of an existing assignment
	Update(ctx context.Context, assignment *models.Assignment) error

	// Delete hard deletes an assignment
	Delete(ctx context.Context, id string) error
}

// AssignmentFilter holds filtering options for listing assignments
type AssignmentFilter struct {
	EngineerID string
	ProjectID  string
	Expand     bool
}

// Store groups the repositories backed by one persistence engine.
type Store struct {
	Users       UserRepository
	Projects    ProjectRepository
	Assignments AssignmentRepository
}
