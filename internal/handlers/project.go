package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/resource-management-api/internal/dto"
	apierrors "github.com/yukikurage/resource-management-api/internal/errors"
	"github.com/yukikurage/resource-management-api/internal/models"
	"github.com/yukikurage/resource-management-api/internal/response"
	"github.com/yukikurage/resource-management-api/internal/services"
)

const msgProjectFieldsRequired = "Project name, start date & managerId are required"

// ProjectHandler serves project endpoints.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects returns every project, or 404 when there are none.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	response.OK(c, "Projects fetched successfully", dto.ToProjectDTOs(projects))
}

// CreateProject creates a new project.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name           string   `json:"name" binding:"required"`
		Description    *string  `json:"description"`
		StartDate      string   `json:"startDate" binding:"required"`
		EndDate        string   `json:"endDate"`
		RequiredSkills []string `json:"requiredSkills"`
		TeamSize       *int     `json:"teamSize" binding:"omitempty,min=1"`
		Status         *string  `json:"status" binding:"omitempty,oneof=planning active completed"`
		ManagerID      string   `json:"managerId" binding:"required"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, msgProjectFieldsRequired, err)
		return
	}

	startDate, ok := parseDateField(c, "startDate", req.StartDate)
	if !ok {
		return
	}
	endDate, ok := parseOptionalDateField(c, "endDate", req.EndDate)
	if !ok {
		return
	}

	input := services.CreateProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		StartDate:      startDate,
		EndDate:        endDate,
		RequiredSkills: req.RequiredSkills,
		TeamSize:       req.TeamSize,
		ManagerID:      req.ManagerID,
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		input.Status = &status
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	response.Created(c, "Project created successfully", dto.ToProjectDTO(*project))
}

// GetProject returns a single project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondProjectError(c, err)
		return
	}

	response.OK(c, "Project fetched successfully", dto.ToProjectDTO(*project))
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoProjects):
		apierrors.NotFound(c, "No projects found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrProjectFieldsMissing):
		apierrors.BadRequest(c, msgProjectFieldsRequired)
	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidTeamSize),
		errors.Is(err, services.ErrInvalidProjectStatus):
		apierrors.BadRequest(c, capitalize(err.Error()))
	default:
		apierrors.InternalError(c, err)
	}
}
