package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/resource-management-api/internal/dto"
	apierrors "github.com/yukikurage/resource-management-api/internal/errors"
	"github.com/yukikurage/resource-management-api/internal/response"
	"github.com/yukikurage/resource-management-api/internal/services"
)

const msgAssignmentFieldsRequired = "All Fields are mandatory please check it out properly"

// AssignmentHandler serves assignment endpoints.
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// ListAssignments returns assignments with references expanded, optionally
// filtered by engineerId and projectId query parameters.
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.assignmentService.ListAssignments(c.Request.Context(), services.ListAssignmentsInput{
		EngineerID: c.Query("engineerId"),
		ProjectID:  c.Query("projectId"),
	})
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}

	response.OK(c, "Assignments fetched successfully", dto.ToAssignmentDTOs(assignments, true))
}

// GetAssignment returns a single expanded assignment.
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignment, err := h.assignmentService.GetAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	response.OK(c, "Assignment fetched successfully", dto.ToAssignmentDTO(*assignment, true))
}

// CreateAssignment creates an assignment and answers 200 with the expanded record.
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	type CreateAssignmentRequest struct {
		EngineerID           string `json:"engineerId" binding:"required"`
		ProjectID            string `json:"projectId" binding:"required"`
		AllocationPercentage *int   `json:"allocationPercentage" binding:"required,min=0,max=100"`
		StartDate            string `json:"startDate" binding:"required"`
		EndDate              string `json:"endDate"`
		Role                 string `json:"role" binding:"required"`
	}

	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, msgAssignmentFieldsRequired, err)
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

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), services.CreateAssignmentInput{
		EngineerID:           req.EngineerID,
		ProjectID:            req.ProjectID,
		AllocationPercentage: *req.AllocationPercentage,
		StartDate:            startDate,
		EndDate:              endDate,
		Role:                 req.Role,
	})
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	response.OK(c, "Assignment created successfully", dto.ToAssignmentDTO(*assignment, true))
}

// UpdateAssignment applies a partial update. An empty endDate clears it.
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	type UpdateAssignmentRequest struct {
		EngineerID           *string `json:"engineerId"`
		ProjectID            *string `json:"projectId"`
		AllocationPercentage *int    `json:"allocationPercentage" binding:"omitempty,min=0,max=100"`
		StartDate            *string `json:"startDate"`
		EndDate              *string `json:"endDate"`
		Role                 *string `json:"role"`
	}

	var req UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, "Invalid assignment details", err)
		return
	}

	input := services.UpdateAssignmentInput{
		EngineerID:           req.EngineerID,
		ProjectID:            req.ProjectID,
		AllocationPercentage: req.AllocationPercentage,
		Role:                 req.Role,
	}
	if req.StartDate != nil {
		startDate, ok := parseDateField(c, "startDate", *req.StartDate)
		if !ok {
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		if strings.TrimSpace(*req.EndDate) == "" {
			input.ClearEndDate = true
		} else {
			endDate, ok := parseDateField(c, "endDate", *req.EndDate)
			if !ok {
				return
			}
			input.EndDate = &endDate
		}
	}

	assignment, err := h.assignmentService.UpdateAssignment(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	response.OK(c, "Assignment updated successfully", dto.ToAssignmentDTO(*assignment, true))
}

// DeleteAssignment removes an assignment.
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	if err := h.assignmentService.DeleteAssignment(c.Request.Context(), c.Param("id")); err != nil {
		respondAssignmentError(c, err)
		return
	}

	response.OK(c, "Assignment deleted successfully", nil)
}

func respondAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAssignmentNotFound):
		apierrors.NotFound(c, "Assignment not found")
	case errors.Is(err, services.ErrAssignmentFieldsMissing):
		apierrors.BadRequest(c, msgAssignmentFieldsRequired)
	case errors.Is(err, services.ErrInvalidAllocation),
		errors.Is(err, services.ErrInvalidDateRange):
		apierrors.BadRequest(c, capitalize(err.Error()))
	default:
		apierrors.InternalError(c, err)
	}
}
