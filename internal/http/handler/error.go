package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"blogapi/internal/http/middleware"
	"blogapi/internal/service"
	"blogapi/internal/validation"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	Status    int                     `json:"status"`
	Message   string                  `json:"message"`
	Timestamp time.Time               `json:"timestamp"`
	Code      string                  `json:"code"`
	RequestID string                  `json:"request_id"`
	Fields    []validation.FieldError `json:"fields,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Code:      code,
		RequestID: requestIDFromCtx(c),
	})
}

func writeValidationError(c *fiber.Ctx, verr *validation.Error) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorPayload{
		Status:    fiber.StatusBadRequest,
		Message:   verr.Error(),
		Timestamp: time.Now().UTC(),
		Code:      "VALIDATION_FAILED",
		RequestID: requestIDFromCtx(c),
		Fields:    verr.Fields,
	})
}

// writeServiceError translates a manager failure into its response shape.
// notFoundMsg is used verbatim for ErrArticleNotFound.
func writeServiceError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return writeValidationError(c, verr)
	case errors.Is(err, service.ErrArticleNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", notFoundMsg)
	case errors.Is(err, service.ErrExportDisabled):
		return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "article export is not configured")
	case errors.Is(err, context.DeadlineExceeded):
		return writeError(c, fiber.StatusGatewayTimeout, "TIMEOUT", "request timed out")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
