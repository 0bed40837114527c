package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionContextKey = "sessionID"

// SessionCookieName is the cookie holding the shopper's session identifier.
const SessionCookieName = "cart_session"

// SessionMiddleware assigns each shopper a session identifier via cookie.
// The cart lives under this identifier until checkout or TTL expiry.
func SessionMiddleware(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookieName, sessionID, maxAgeSeconds, "/", "", false, true)
		}
		c.Set(SessionContextKey, sessionID)
		c.Next()
	}
}

// GetSessionID extracts the session identifier set by SessionMiddleware.
func GetSessionID(c *gin.Context) (string, error) {
	if val, ok := c.Get(SessionContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("session ID not found in context")
}
