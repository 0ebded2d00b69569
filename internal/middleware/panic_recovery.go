package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"pouparia/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var panicsRecoveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_panics_recovered_total",
		Help: "Handler panics turned into 500 responses, by route",
	},
	[]string{"route"},
)

// PanicRecovery turns a handler panic into a SYSTEM_001 response.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}
					respondToPanic(c, r)
				}
			}()
			return next(c)
		}
	}
}

func respondToPanic(c echo.Context, recovered any) {
	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	slog.Error("handler panicked",
		"trace_id", traceID,
		"panic", fmt.Sprint(recovered),
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"stack", string(debug.Stack()),
	)
	panicsRecoveredTotal.WithLabelValues(c.Path()).Inc()

	// headers already sent, nothing more can be said to the client
	if c.Response().Committed {
		return
	}

	body := errors.NewErrorResponse(errors.SystemInternalError, traceID)
	if err := c.JSON(http.StatusInternalServerError, body); err != nil {
		slog.Error("writing panic response", "trace_id", traceID, "error", err)
	}
}
