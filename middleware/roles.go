package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplane-dev/storefront-api/models"
)

// RequireRole gates a route group to the given roles. Must run after
// ValidateToken has resolved the caller's role into the context.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := models.Role(c.GetString("role"))
		for _, r := range roles {
			if current == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}
