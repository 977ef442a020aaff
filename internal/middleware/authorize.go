package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PolicyService is a local interface: any package exposing
// Authorize(role, resource, action) fits.
type PolicyService interface {
	Authorize(role, resource, action string) (bool, error)
}

// Authorize gates a route on the actor's role. The role must already be
// present in the context (set by AuthMiddleware).
func Authorize(policy PolicyService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		allowed, err := policy.Authorize(role, resource, action)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
