package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smarthogar/smarthogar-server/internal/pkg/jwt"
	"github.com/smarthogar/smarthogar-server/internal/pkg/response"
)

const (
	UserIDKey = "userID"
)

// Auth validates the bearer token and stores the user ID in the context.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AuthError(c, "debes iniciar sesión")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			response.AuthError(c, "formato de autenticación inválido")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err != nil {
			response.AuthError(c, "sesión inválida o expirada")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// GetUserID reads the authenticated user ID from the context.
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}
