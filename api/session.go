package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionContextKey = "sessionID"

type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// SessionMiddleware assigns every caller a UUID session id carried in a cookie.
// An unknown or malformed cookie value is replaced with a fresh id.
func SessionMiddleware(opts SessionOptions) gin.HandlerFunc {
	sameSite := http.SameSiteLaxMode
	if opts.Secure {
		sameSite = http.SameSiteNoneMode
	}

	return func(c *gin.Context) {
		sessionID, err := c.Cookie(opts.CookieName)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
		}

		c.SetSameSite(sameSite)
		c.SetCookie(opts.CookieName, sessionID, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)
		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
