package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jfbenitezz/Tutorly-Backend/internal/api/errors"
)

// UserIDKey is the context key under which the resolved caller identity is stored.
const UserIDKey = "user_id"

// Identity resolves the caller identity set by the upstream identity proxy.
// Authentication itself happens upstream; this service only trusts the
// forwarded X-User-ID header. Requests without one are rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if userID == "" {
			HandleError(c, errors.NewUnauthorizedError("missing caller identity"))
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CallerID returns the identity resolved by the Identity middleware.
func CallerID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
