package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/resource-management-api/internal/errors"
	"github.com/yukikurage/resource-management-api/internal/utils"
)

const msgInvalidDate = "Dates must be RFC 3339 timestamps or YYYY-MM-DD"

// parseDateField parses a required date, writing a 400 naming the field on failure.
func parseDateField(c *gin.Context, field, value string) (time.Time, bool) {
	t, err := utils.ParseDate(value)
	if err != nil {
		apierrors.BadRequestWithDetails(c, msgInvalidDate, map[string]string{field: err.Error()})
		return time.Time{}, false
	}
	return t, true
}

// parseOptionalDateField is parseDateField for values that may be empty.
func parseOptionalDateField(c *gin.Context, field, value string) (*time.Time, bool) {
	t, err := utils.ParseOptionalDate(value)
	if err != nil {
		apierrors.BadRequestWithDetails(c, msgInvalidDate, map[string]string{field: err.Error()})
		return nil, false
	}
	return t, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
