package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sarunks7/storely-backend/internal/platform/ctxutil"
)

// SessionCookieName carries the anonymous cart session key. The cart
// handlers set it when a new session gets minted.
const SessionCookieName = "cart_session"

// SessionHeaderName lets cookie-less clients present the same key.
const SessionHeaderName = "X-Cart-Session"

// AttachRequestContext seeds every request with RequestData so downstream
// middleware and handlers can merge into it. The anonymous session key is
// picked up here; user identity is attached later by the auth middleware.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := &ctxutil.RequestData{}

		if key, err := c.Cookie(SessionCookieName); err == nil {
			rd.SessionKey = strings.TrimSpace(key)
		}
		if rd.SessionKey == "" {
			rd.SessionKey = strings.TrimSpace(c.GetHeader(SessionHeaderName))
		}

		ctx := ctxutil.WithRequestData(c.Request.Context(), rd)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
