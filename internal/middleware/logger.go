package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"hotelbooking/internal/pkg/response"
)

const requestIDHeader = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs every request and recovers from panics. onPanic, when
// set, is invoked after a recovered panic.
func RequestLogger(logger log.Logger, onPanic func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				if onPanic != nil {
					onPanic()
				}
				level.Error(logger).Log(
					"msg", "panic recovered",
					"err", fmt.Sprintf("%v", recovered),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", c.GetString("request_id"),
					"stack", string(debug.Stack()),
				)
				response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}

			status := c.Writer.Status()
			kv := []any{
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", status,
				"latency", time.Since(start),
				"client_ip", c.ClientIP(),
				"user_id", c.GetInt64(ctxUserID),
				"request_id", c.GetString("request_id"),
			}
			for _, err := range c.Errors {
				kv = append(kv, "err", err.Error())
			}

			switch {
			case status >= http.StatusInternalServerError:
				level.Error(logger).Log(append([]any{"msg", "request failed"}, kv...)...)
			case status >= http.StatusBadRequest:
				level.Warn(logger).Log(append([]any{"msg", "request rejected"}, kv...)...)
			default:
				level.Info(logger).Log(append([]any{"msg", "request"}, kv...)...)
			}
		}()

		c.Next()
	}
}
