package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/resource-management-api/internal/auth"
	"github.com/yukikurage/resource-management-api/internal/constants"
	apierrors "github.com/yukikurage/resource-management-api/internal/errors"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// Messages returned by RequireAuth
const (
	MsgTokenRequired = "Authentication required please provide a token"
	MsgTokenInvalid  = "Invalid or expired token, please try again"
)

// RequireAuth checks the bearer token and stores the caller's id and email in context
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			apierrors.Unauthorized(c, MsgTokenRequired)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			apierrors.Unauthorized(c, MsgTokenRequired)
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			apierrors.Unauthorized(c, MsgTokenInvalid)
			return
		}

		c.Set(constants.ContextKeyUserID, claims.ID)
		c.Set(constants.ContextKeyEmail, claims.Email)

		// Enrich the request logger set up by logger.GinMiddleware
		if l, ok := c.Get(constants.ContextKeyLogger); ok {
			if zl, ok := l.(*zap.Logger); ok {
				c.Set(constants.ContextKeyLogger, zl.With(zap.String("user_id", claims.ID)))
			}
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}

// GetEmail retrieves the current user's email from context
func GetEmail(c *gin.Context) (string, bool) {
	email := c.GetString(constants.ContextKeyEmail)
	return email, email != ""
}
