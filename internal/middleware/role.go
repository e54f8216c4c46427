package middleware

import (
	"errors"
	"slices"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/resource-management-api/internal/errors"
	"github.com/yukikurage/resource-management-api/internal/models"
	"github.com/yukikurage/resource-management-api/internal/repository"
)

// MsgRoleForbidden is returned when the caller's role may not perform the action
const MsgRoleForbidden = "Only managers can perform this action"

// RequireRole checks that the authenticated user holds one of the roles.
// The role is read from the store on every call, so a changed role takes
// effect without a new token. Must run after RequireAuth.
func RequireRole(users repository.UserRepository, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				apierrors.Forbidden(c, MsgRoleForbidden)
				return
			}
			apierrors.InternalError(c, err)
			return
		}

		if !slices.Contains(roles, user.Role) {
			apierrors.Forbidden(c, MsgRoleForbidden)
			return
		}

		c.Next()
	}
}
