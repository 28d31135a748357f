package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gastozero/backend/internal/auth"
	"github.com/gastozero/backend/internal/common"
)

// RequestID tags every request with a UUID, on the context and the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := uuid.New().String()
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), rid))
		c.Header("X-Request-ID", rid)
		c.Next()
	}
}

// JWTAuth validates the Bearer token and sets the user ID on the request.
// Unauthenticated requests never reach the pipeline.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondError(c, http.StatusUnauthorized, "unauthenticated", "access token required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
			return
		}

		c.Request = c.Request.WithContext(common.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

func currentUserID(c *gin.Context) (uint, bool) {
	return common.UserIDFromContext(c.Request.Context())
}
