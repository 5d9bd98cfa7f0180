// internal/middleware/session.go
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/storefront-backend/internal/utils"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "sid"
)

// Session identifies the visitor that owns a cart and a favorites list. The id
// comes from the X-Session-ID header or the sid cookie; a missing or malformed
// id is replaced by a fresh one. The id is echoed in the response header.
func Session(cookieTTL time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID, _ = c.Cookie(SessionCookie)
		}

		if parsed, err := uuid.Parse(sessionID); err == nil {
			sessionID = parsed.String()
		} else {
			sessionID = uuid.NewString()
		}

		c.Set(utils.SessionContextKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sessionID, int(cookieTTL.Seconds()), "/", "", secure, true)
		c.Next()
	}
}
