package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"inkspace/internal/pkg/logger"
	"inkspace/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorLogger logs every request, counts it, and recovers from panics.
func ErrorLogger() gin.HandlerFunc {
	log := logger.Component("http")
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				requestEvent(log.Error(), c, start).
					Err(err).
					Str("stack", string(debug.Stack())).
					Msg("panic")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "Internal Server Error",
					},
				})
			}

			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()

			switch {
			case len(c.Errors) > 0:
				requestEvent(log.Error(), c, start).Str("errors", c.Errors.String()).Msg("request failed")
			case c.Writer.Status() >= http.StatusInternalServerError:
				requestEvent(log.Error(), c, start).Msg("request failed")
			default:
				requestEvent(log.Debug(), c, start).Msg("request")
			}
		}()

		c.Next()
	}
}

func requestEvent(e *zerolog.Event, c *gin.Context, start time.Time) *zerolog.Event {
	return e.
		Int("status", c.Writer.Status()).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("client_ip", c.ClientIP()).
		Str("user_id", c.GetString("user_id")).
		Str("role", c.GetString("role")).
		Str("request_id", requestID(c)).
		Dur("latency", time.Since(start))
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}
