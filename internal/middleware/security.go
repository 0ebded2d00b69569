package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityOptions tunes the headers SecurityHeaders writes
type SecurityOptions struct {
	// HSTS enables Strict-Transport-Security; only set it when served over TLS
	HSTS bool
}

// SecurityHeaders adds security headers to every API response.
// Responses carry per-user financial data, so browsers and proxies must not cache them.
func SecurityHeaders(opts SecurityOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
			if opts.HSTS {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			h.Set("Cache-Control", "no-store, private")
			h.Set("Pragma", "no-cache")

			return next(c)
		}
	}
}
