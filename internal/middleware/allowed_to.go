package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AllowedTo restreint l'accès aux rôles listés. À chaîner après Protect.
func AllowedTo(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if !allowed[role] {
			c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas autorisé à effectuer cette action"})
			c.Abort()
			return
		}
		c.Next()
	}
}
