package observability

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// LogFieldRequestID is the field name for request ID.
	LogFieldRequestID = "request_id"
	// LogFieldMethod is the field name for the HTTP method.
	LogFieldMethod = "method"
	// LogFieldPath is the field name for the request path.
	LogFieldPath = "path"
	// LogFieldStatus is the field name for the response status.
	LogFieldStatus = "status"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
)

// requestIDContextKey is the echo context key holding the request ID.
const requestIDContextKey = "request-id"

// RequestID returns the request ID assigned by RequestLogger, if any.
func RequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDContextKey).(string); ok {
		return id
	}
	return ""
}

// RequestLogger assigns every request a UUID and logs method, path,
// status and duration on completion.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := uuid.NewString()
			c.Set(requestIDContextKey, requestID)
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("request completed",
				slog.String(LogFieldRequestID, requestID),
				slog.String(LogFieldMethod, c.Request().Method),
				slog.String(LogFieldPath, c.Request().URL.Path),
				slog.Int(LogFieldStatus, c.Response().Status),
				slog.Int64(LogFieldDuration, time.Since(start).Milliseconds()),
			)
			return nil
		}
	}
}
