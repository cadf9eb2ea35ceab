package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
	"github.com/jnabil1974/storal.fr-sub003/internal/managerapi/handlers/dto"
	"github.com/jnabil1974/storal.fr-sub003/internal/ratelimit"
	"github.com/jnabil1974/storal.fr-sub003/pkg/errormapper"
)

const RequestIDHeader = "X-Request-ID"

// RequestID stores the caller's X-Request-ID, or a new uuid, in the request context
// and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one structured record per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "HTTP request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

// NewRouter returns a gin engine with the common middleware. Forwarding headers are
// only honoured from trustedProxies; with none, ClientIP is the TCP peer address.
func NewRouter(trustedProxies []string) (*gin.Engine, error) {
	router := gin.New()
	if len(trustedProxies) == 0 {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.Use(gin.Recovery(), RequestID(), AccessLog())
	return router, nil
}

// RateLimit answers 429 once a client IP exhausts its bucket.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			slog.WarnContext(c.Request.Context(), "Rate limit exceeded", slog.String("client_ip", c.ClientIP()))
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:     "Too many requests",
				Code:      errormapper.ErrorCodeRateLimited,
				Retryable: true,
				RequestID: logging.RequestID(c.Request.Context()),
			})
			return
		}
		c.Next()
	}
}
