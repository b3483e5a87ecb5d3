package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDKey is the context key carrying the request identifier.
	RequestIDKey = "request_id"
	// UserIDKey is the context key carrying the authenticated user.
	UserIDKey = "user_id"

	requestIDHeader = "X-Request-ID"
	userIDHeader    = "X-User-ID"
)

// RequestID assigns each request an identifier, honouring one supplied
// by the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// Identity resolves the signed-in user from the identity header set by
// the auth layer in front of this service. Requests without it are
// still routed; handlers decide whether anonymity is acceptable.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := c.GetHeader(userIDHeader); uid != "" {
			c.Set(UserIDKey, uid)
		}
		c.Next()
	}
}

// Logger writes one structured access log line per request.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(RequestIDKey)))
	}
}
