package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spacesync-api/internal/models"
)

const (
	actorKey = "actor"
	roleKey  = "actor_role"

	actorHeader = "X-User"
	roleHeader  = "X-User-Role"

	defaultActor = "Guest"
)

// Actor reads the caller identity headers set by the campus gateway and
// stores them on the request context. Unknown or missing roles default to
// the unprivileged user role.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			actor = defaultActor
		}

		role := models.UserRole(c.GetHeader(roleHeader))
		if role != models.RoleAdmin {
			role = models.RoleUser
		}

		c.Set(actorKey, actor)
		c.Set(roleKey, role)
		c.Next()
	}
}

// ActorName returns the caller identity stored by Actor.
func ActorName(c *gin.Context) string {
	if v, exists := c.Get(actorKey); exists {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return defaultActor
}

// ActorRole returns the caller role stored by Actor.
func ActorRole(c *gin.Context) models.UserRole {
	if v, exists := c.Get(roleKey); exists {
		if role, ok := v.(models.UserRole); ok {
			return role
		}
	}
	return models.RoleUser
}
