package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbuddy-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbuddy-api/pkg/utils"
)

const waiterIDKey = "waiter_id"

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// WaiterAuthMiddleware attaches the waiter id from a bearer token when one is
// sent. Requests without a token pass through anonymously; a bad token is
// rejected rather than silently dropped.
func WaiterAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateWaiterToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(waiterIDKey, claims.WaiterID)
		c.Next()
	}
}

// GetWaiterID returns the authenticated waiter id, or nil for anonymous requests
func GetWaiterID(c *gin.Context) *string {
	id := c.GetString(waiterIDKey)
	if id == "" {
		return nil
	}
	return &id
}

// clientKey identifies the caller for rate limiting and idempotency
func clientKey(c *gin.Context) string {
	if id := GetWaiterID(c); id != nil {
		return "waiter:" + *id
	}
	return "ip:" + c.ClientIP()
}
