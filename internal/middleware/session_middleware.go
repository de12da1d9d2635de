package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader carries the browser-session identifier that scopes the
// cached business, review and favorite collections.
const SessionHeader = "X-Session-ID"

const sessionIDKey = "session_id"

// SessionMiddleware extracts the session ID from the request, minting a
// fresh one when the client has none yet. The ID is echoed back so the
// client can persist it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
			GetLoggerFromContext(c).Debug("Minted new session", map[string]interface{}{
				"session_id": sessionID,
			})
		}

		c.Set(sessionIDKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// GetSessionID extracts the session ID from the gin context.
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
