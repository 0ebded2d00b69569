package handlers

import (
	"fmt"
	"time"

	"pouparia/internal/services"

	"github.com/labstack/echo/v4"
)

// UserIDContextKey is where RequireAuth stores the token subject
const UserIDContextKey = "user_id"

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromContext returns the authenticated user's id.
// Returns ErrUnauthorized if it is missing or empty.
func getUserIDFromContext(c echo.Context) (string, error) {
	userID, ok := c.Get(UserIDContextKey).(string)
	if !ok || userID == "" {
		return "", ErrUnauthorized
	}
	return userID, nil
}

// parseDateParam reads a required RFC3339 or YYYY-MM-DD query parameter
func parseDateParam(c echo.Context, name string) (time.Time, error) {
	value := c.QueryParam(name)
	if value == "" {
		return time.Time{}, fmt.Errorf("is required")
	}

	t, err := services.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("must be a date (YYYY-MM-DD or RFC3339)")
	}
	return t, nil
}

// parseDateRange reads the from/to query parameters shared by range endpoints
func parseDateRange(c echo.Context) (time.Time, time.Time, map[string]string) {
	fields := map[string]string{}

	from, err := parseDateParam(c, "from")
	if err != nil {
		fields["from"] = err.Error()
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		fields["to"] = err.Error()
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, fields
	}
	return from, to, nil
}

// observeReport records the outcome and latency of a read endpoint
func observeReport(metrics services.MetricsRecorderInterface, report string, start time.Time, err error) {
	if metrics == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failed"
	}
	metrics.IncrementCounter("report.query", map[string]string{"report": report, "status": status})
	metrics.RecordProcessingTime("report."+report, time.Since(start))
}
