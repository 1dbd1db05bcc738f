package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spacesync-api/internal/models"
	appErrors "github.com/noah-isme/spacesync-api/pkg/errors"
	"github.com/noah-isme/spacesync-api/pkg/response"
)

// RequireAdmin rejects requests whose caller role is not admin. It must run
// after Actor.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ActorRole(c) != models.RoleAdmin {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
