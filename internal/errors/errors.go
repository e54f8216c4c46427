package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/resource-management-api/internal/response"
)

// Default messages
const (
	MsgUnauthorized  = "Authentication required please provide a token"
	MsgForbidden     = "Access denied"
	MsgNotFound      = "Resource not found"
	MsgInvalidInput  = "Invalid request body"
	MsgInternalError = "Internal server error"
)

// RespondWithError aborts the request with an error envelope.
func RespondWithError(c *gin.Context, statusCode int, message string, details any) {
	c.AbortWithStatusJSON(statusCode, response.New(statusCode, message, details))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = MsgUnauthorized
	}
	RespondWithError(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = MsgForbidden
	}
	RespondWithError(c, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = MsgNotFound
	}
	RespondWithError(c, http.StatusNotFound, message, nil)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = MsgInvalidInput
	}
	RespondWithError(c, http.StatusBadRequest, message, nil)
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details any) {
	RespondWithError(c, http.StatusBadRequest, message, details)
}

// ValidationFailed sends a 400 response whose data maps each offending
// field to the rule it broke. Body errors that are not validation errors
// (malformed JSON, wrong types) are reported under "body".
func ValidationFailed(c *gin.Context, message string, err error) {
	BadRequestWithDetails(c, message, FieldErrors(err))
}

// InternalError records err on the context for the request logger and
// sends a 500 response that never carries the underlying message.
func InternalError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	RespondWithError(c, http.StatusInternalServerError, MsgInternalError, nil)
}

// FieldErrors converts a binding error into a field → problem map.
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[jsonFieldName(fe.Field())] = describe(fe)
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fields[typeErr.Field] = "must be a " + typeErr.Type.String()
		return fields
	}

	if err != nil {
		fields["body"] = "malformed JSON"
	}
	return fields
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// jsonFieldName lower-cases the first letter so struct field names line
// up with the camelCase JSON keys clients send.
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	if strings.HasSuffix(field, "ID") {
		field = strings.TrimSuffix(field, "ID") + "Id"
	}
	return strings.ToLower(field[:1]) + field[1:]
}
