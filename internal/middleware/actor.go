package middleware

import "github.com/gin-gonic/gin"

const actorKey = "CurrentActor"

// InjectActor resolves the acting user for audit and status-log attribution
// from the X-Actor header, falling back to the configured default. Full
// authentication is deliberately out of scope; the header is trusted.
func InjectActor(defaultActor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader("X-Actor")
		if actor == "" {
			actor = defaultActor
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// Actor returns the acting user set by InjectActor.
func Actor(c *gin.Context) string {
	return c.GetString(actorKey)
}
