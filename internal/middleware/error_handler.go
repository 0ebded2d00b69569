package middleware

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"pouparia/internal/errors"
	"pouparia/internal/handlers"
	"pouparia/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_error_responses_total",
		Help: "Error responses written by the API, by error code, route and status",
	},
	[]string{"code", "route", "status"},
)

// statusCodes translates framework-level HTTP errors (unknown route, body too
// large, rate limit) into API error codes.
var statusCodes = map[int]errors.ErrorCode{
	http.StatusBadRequest:            errors.ValidationGeneral,
	http.StatusUnauthorized:          errors.AuthMissingToken,
	http.StatusNotFound:              errors.SystemRouteNotFound,
	http.StatusMethodNotAllowed:      errors.ValidationGeneral,
	http.StatusRequestEntityTooLarge: errors.ValidationGeneral,
	http.StatusUnprocessableEntity:   errors.ValidationGeneral,
	http.StatusTooManyRequests:       errors.SystemRateLimitExceeded,
	http.StatusInternalServerError:   errors.SystemInternalError,
	http.StatusServiceUnavailable:    errors.SystemServiceUnavailable,
}

func codeForStatus(status int) errors.ErrorCode {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return errors.SystemUnexpectedError
}

// CustomHTTPErrorHandler writes every error returned by a handler or
// middleware as the API error envelope.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	body, status := resolveError(err, traceID)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs := []any{
		"trace_id", traceID,
		"error_code", body.Error.Code,
		"status", status,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"error", err.Error(),
	}
	if userID, ok := c.Get(handlers.UserIDContextKey).(string); ok {
		attrs = append(attrs, "user_id", userID)
	}
	slog.Log(c.Request().Context(), level, "request failed", attrs...)

	httpErrorsTotal.WithLabelValues(body.Error.Code, c.Path(), strconv.Itoa(status)).Inc()

	if writeErr := c.JSON(status, body); writeErr != nil {
		slog.Error("writing error response", "trace_id", traceID, "error", writeErr)
	}
}

// resolveError picks the envelope and status for err. Typed application
// errors win over framework errors, and anything unrecognised is reported as
// an internal error without leaking its text.
func resolveError(err error, traceID string) (*errors.ErrorResponse, int) {
	if appErr, ok := errors.AsAppError(err); ok {
		body := errors.FromAppError(appErr, traceID)
		return body, body.GetHTTPStatus()
	}

	var httpErr *echo.HTTPError
	if stderrors.As(err, &httpErr) {
		opts := []errors.ErrorOption{}
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			opts = append(opts, errors.WithMessage(msg))
		}
		return errors.NewErrorResponse(codeForStatus(httpErr.Code), traceID, opts...), httpErr.Code
	}

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		return errors.NewValidationError(validation.FieldErrors(fieldErrs), traceID), http.StatusBadRequest
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewErrorResponse(errors.SystemServiceUnavailable, traceID), http.StatusServiceUnavailable
	}

	body, _ := errors.WrapSystemError(err, traceID)
	return body, body.GetHTTPStatus()
}
