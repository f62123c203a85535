package auth

import "github.com/gin-gonic/gin"

// ActorKey is the gin context key holding the authenticated user id.
const ActorKey = "actor_id"

// Actor returns the authenticated user id set by the auth middleware.
func Actor(c *gin.Context) string {
	return c.GetString(ActorKey)
}
