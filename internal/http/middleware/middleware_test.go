package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace oversized request id", func(t *testing.T) {
		huge := strings.Repeat("x", maxRequestIDLen+1)
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, huge)

		resp, _ := app.Test(req)

		got := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, got)
		assert.NotEqual(t, huge, got)
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	loc := time.UTC

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, loc))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	require.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
	assert.Equal(t, "http_request", logData["msg"])
}

func TestLogger_ErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(LoggerWithWriter(&buf, time.UTC))

	req := httptest.NewRequest("GET", "/missing", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, float64(fiber.StatusNotFound), logData["status"])
}

func TestTimeout(t *testing.T) {
	t.Run("sets a deadline", func(t *testing.T) {
		app := fiber.New()
		app.Use(Timeout(50 * time.Millisecond))
		app.Get("/test", func(c *fiber.Ctx) error {
			deadline, ok := c.UserContext().Deadline()
			if !ok || time.Until(deadline) > 50*time.Millisecond {
				return c.SendStatus(fiber.StatusTeapot)
			}
			<-c.UserContext().Done()
			if c.UserContext().Err() == context.DeadlineExceeded {
				return c.SendStatus(fiber.StatusGatewayTimeout)
			}
			return c.SendStatus(fiber.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), 1000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusGatewayTimeout, resp.StatusCode)
	})

	t.Run("zero disables the deadline", func(t *testing.T) {
		app := fiber.New()
		app.Use(Timeout(0))
		app.Get("/test", func(c *fiber.Ctx) error {
			if _, ok := c.UserContext().Deadline(); ok {
				return c.SendStatus(fiber.StatusTeapot)
			}
			return c.SendStatus(fiber.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestLogger_TraceID(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	traceID := trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	app.Use(func(c *fiber.Ctx) error {
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
			TraceFlags: trace.FlagsSampled,
		})
		c.SetUserContext(trace.ContextWithSpanContext(c.UserContext(), sc))
		return c.Next()
	})
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	_, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, traceID.String(), logData["trace_id"])
}
