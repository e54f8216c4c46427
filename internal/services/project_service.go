package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/resource-management-api/internal/constants"
	"github.com/yukikurage/resource-management-api/internal/models"
	"github.com/yukikurage/resource-management-api/internal/repository"
	"github.com/yukikurage/resource-management-api/internal/utils"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrNoProjects           = errors.New("no projects found")
	ErrProjectFieldsMissing = errors.New("project name, start date and manager are required")
	ErrInvalidProjectStatus = errors.New("status must be planning, active or completed")
	ErrInvalidTeamSize      = errors.New("team size must be at least 1")
	ErrInvalidDateRange     = errors.New("end date cannot be before start date")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name           string
	Description    *string
	StartDate      time.Time
	EndDate        *time.Time
	RequiredSkills []string
	TeamSize       *int
	Status         *models.ProjectStatus
	ManagerID      string
}

// ListProjects returns every project. An empty collection is reported as ErrNoProjects.
func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, ErrNoProjects
	}
	return projects, nil
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProject validates and stores a new project
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	managerID := strings.TrimSpace(input.ManagerID)
	if name == "" || managerID == "" || input.StartDate.IsZero() {
		return nil, ErrProjectFieldsMissing
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidDateRange
	}

	teamSize := constants.DefaultTeamSize
	if input.TeamSize != nil {
		if *input.TeamSize < 1 {
			return nil, ErrInvalidTeamSize
		}
		teamSize = *input.TeamSize
	}

	status := models.ProjectStatusPlanning
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidProjectStatus
		}
		status = *input.Status
	}

	project := &models.Project{
		ID:             uuid.NewString(),
		Name:           name,
		Description:    input.Description,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		RequiredSkills: utils.NormalizeList(input.RequiredSkills),
		TeamSize:       teamSize,
		Status:         status,
		ManagerID:      managerID,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}
