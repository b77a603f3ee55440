package middleware

import (
	"net/http"
	"strings"

	"candidate-tracker-backend/internal/delivery/http/response"
	"candidate-tracker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the opaque bearer token to a recruiter identity.
// Requests without a valid, unexpired token are rejected with 401.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header must use the Bearer scheme", nil)
			c.Abort()
			return
		}

		user, err := authUC.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUsername), user.Username)

		c.Next()
	}
}
