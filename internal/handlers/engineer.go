package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/resource-management-api/internal/dto"
	apierrors "github.com/yukikurage/resource-management-api/internal/errors"
	"github.com/yukikurage/resource-management-api/internal/response"
	"github.com/yukikurage/resource-management-api/internal/services"
)

// EngineerHandler serves engineer listing and capacity.
type EngineerHandler struct {
	engineerService *services.EngineerService
}

// NewEngineerHandler creates a new EngineerHandler.
func NewEngineerHandler(engineerService *services.EngineerService) *EngineerHandler {
	return &EngineerHandler{engineerService: engineerService}
}

// ListEngineers returns all users with the engineer role.
func (h *EngineerHandler) ListEngineers(c *gin.Context) {
	engineers, err := h.engineerService.ListEngineers(c.Request.Context())
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}

	response.OK(c, "Engineers fetched successfully", dto.ToUserDTOs(engineers))
}

// GetCapacity returns the engineer's allocated and available capacity.
// An optional asOf query restricts the sum to assignments active that day.
func (h *EngineerHandler) GetCapacity(c *gin.Context) {
	var asOf *time.Time
	if raw := c.Query("asOf"); raw != "" {
		t, ok := parseDateField(c, "asOf", raw)
		if !ok {
			return
		}
		asOf = &t
	}

	capacity, err := h.engineerService.Capacity(c.Request.Context(), c.Param("id"), asOf)
	if err != nil {
		if errors.Is(err, services.ErrEngineerNotFound) {
			apierrors.NotFound(c, "Engineer not found")
			return
		}
		apierrors.InternalError(c, err)
		return
	}

	response.OK(c, "Engineer capacity fetched successfully", dto.CapacityDTO{
		Engineer:          capacity.Engineer.Name,
		AvailableCapacity: capacity.Available,
		MaxCapacity:       capacity.Max,
		AllocatedCapacity: capacity.Allocated,
	})
}
