package handlers

import (
	"log/slog"
	"net/http"

	"pouparia/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers report failures through three helpers:
//
//  1. SendError for transport-level client errors (bad path params, unbindable bodies)
//  2. SendAppError for typed service errors (validation, not found, range, conflict)
//  3. SendSystemError for anything else; the cause is logged, never returned
//
// sendServiceError picks between the last two.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendAppError renders a typed service error
func SendAppError(c echo.Context, appErr *errors.AppError) error {
	errorResponse := errors.FromAppError(appErr, getTraceID(c))
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendValidationError renders a field -> reason map as a validation failure
func SendValidationError(c echo.Context, fields map[string]string) error {
	return SendAppError(c, errors.Validation(fields))
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internalErr := errors.WrapSystemError(err, traceID)

	slog.Error("request failed",
		"trace_id", traceID,
		"path", c.Path(),
		"method", c.Request().Method,
		"error", internalErr)

	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// sendServiceError renders err as an AppError when it carries one, else as a system error
func sendServiceError(c echo.Context, err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return SendAppError(c, appErr)
	}
	return SendSystemError(c, err)
}
