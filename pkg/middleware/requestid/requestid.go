package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header is the correlation header shared with upstream proxies and the
// web clients polling room status.
const Header = "X-Request-ID"

const contextKey = "request_id"

// Middleware tags every request with a correlation ID. An ID already set by
// the gateway in front of us is kept so one lookup spans the whole chain;
// otherwise a fresh UUID is minted.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Writer.Header().Set(Header, id)

		c.Next()
	}
}

// Value returns the correlation ID for the current request, or "" when the
// middleware is not installed.
func Value(c *gin.Context) string {
	if v, exists := c.Get(contextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
