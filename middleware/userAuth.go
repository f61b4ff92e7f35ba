package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// FirebaseAuthMiddleware verifies the caller's Firebase ID token and
// stores the uid and email on the context. The core only ever reads the
// identity; it never mutates it.
func FirebaseAuthMiddleware(authClient *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := authClient.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		email, _ := token.Claims["email"].(string)
		c.Set("userID", token.UID)
		c.Set("userEmail", email)
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the context.
func UserID(c *gin.Context) string {
	uid, _ := c.Get("userID")
	id, _ := uid.(string)
	return id
}

// UserEmail returns the authenticated user's email from the context.
func UserEmail(c *gin.Context) string {
	val, _ := c.Get("userEmail")
	email, _ := val.(string)
	return email
}
