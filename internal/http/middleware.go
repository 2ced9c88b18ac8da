package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/allisson/pseudonymizer/internal/httputil"
)

// RecoveryMiddleware turns handler panics into a 500 response. gin's own request dump is
// discarded because its request line carries the field name; only the route pattern and
// the panic value's type are logged.
func RecoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			slog.String("request_id", requestid.Get(c)),
			slog.String("method", c.Request.Method),
			slog.String("route", routePattern(c)),
			slog.String("panic_type", fmt.Sprintf("%T", recovered)),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	})
}

func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// CustomLoggerMiddleware logs each request with slog. The route pattern is logged instead
// of the raw path so field names in URLs never reach the logs; query strings are dropped.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		attrs := []any{
			slog.String("request_id", requestid.Get(c)),
			slog.String("method", c.Request.Method),
			slog.String("route", routePattern(c)),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("http request", attrs...)
		case status >= 400:
			logger.Warn("http request", attrs...)
		default:
			logger.Info("http request", attrs...)
		}
	}
}
