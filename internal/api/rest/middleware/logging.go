package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"audiovault/internal/logger"
)

// Logging logs HTTP requests and their results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, status and duration for each request.
func (l *Logging) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		l.logger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", duration.Milliseconds())

		if status >= http.StatusInternalServerError {
			for _, ginErr := range c.Errors {
				l.logger.Error("request failed",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"error", ginErr.Error())
			}
		}
	}
}
