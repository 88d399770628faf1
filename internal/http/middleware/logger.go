package middleware

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"blogapi/internal/logger"
)

// Logger is a middleware that logs each HTTP request as one JSON line.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// - trace_id (only when the request is sampled by the tracing middleware)
func Logger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", statusOf(c, err)),
			zap.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.IsValid() {
			fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
		}
		log.Info("http_request", fields...)

		return err
	}
}

// LoggerWithWriter is Logger writing to w with timestamps rendered in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logger.NewWithWriter(w, "info", loc))
}

// statusOf reports the status the client will see. Errors returned up the chain are
// only turned into a response by the app's ErrorHandler, after middleware has run.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
