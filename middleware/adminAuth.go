package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"serenity/utils"
)

// AdminAuthMiddleware validates admin JWTs issued by the login handler.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		adminID, email, err := utils.VerifyAdminToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminID", adminID)
		c.Set("adminEmail", email)
		c.Set("isAdmin", true)
		c.Next()
	}
}
