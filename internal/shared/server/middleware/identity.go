package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey  = "userId"
	isGuestKey = "isGuest"

	anonymousUser = "anonymous"
)

// Identity records who is calling from the X-User-Id or X-Guest-Id headers. The
// headers are trusted as sent; callers without either are tagged anonymous.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader("X-User-Id")); userID != "" {
			c.Set(userIDKey, userID)
			c.Set(isGuestKey, false)
			c.Next()
			return
		}
		if guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id")); guestID != "" {
			c.Set(userIDKey, "guest:"+guestID)
			c.Set(isGuestKey, true)
			c.Next()
			return
		}
		c.Set(userIDKey, anonymousUser)
		c.Set(isGuestKey, true)
		c.Next()
	}
}

// UserIDFromContext fetches the caller ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// IsGuest reports whether the caller is a guest or anonymous.
func IsGuest(c *gin.Context) bool {
	if c == nil {
		return true
	}
	return c.GetBool(isGuestKey)
}
