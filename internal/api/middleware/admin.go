package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/smarthogar/smarthogar-server/internal/pkg/response"
	"github.com/smarthogar/smarthogar-server/internal/repository"
)

// Admin requires an authenticated admin user. Must run after Auth.
func Admin(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(userID)
		if err != nil || !user.IsAdmin {
			response.PermissionError(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
