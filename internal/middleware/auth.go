package middleware

import (
	stderrors "errors"

	"pouparia/internal/errors"
	"pouparia/internal/handlers"
	"pouparia/internal/services"

	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid bearer JWT.
// The token's subject becomes the request's user id; handlers never read
// an owner from the request body.
func RequireAuth(tokenService services.TokenServiceInterface, metrics services.MetricsRecorderInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				recordAuthEvent(metrics, "missing_token")
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				recordAuthEvent(metrics, "malformed_header")
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if stderrors.Is(err, services.ErrExpiredToken) {
					recordAuthEvent(metrics, "expired_token")
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				recordAuthEvent(metrics, "invalid_token")
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			c.Set(handlers.UserIDContextKey, claims.UserID())
			if claims.Email != "" {
				c.Set("user_email", claims.Email)
			}
			recordAuthEvent(metrics, "authenticated")

			return next(c)
		}
	}
}

func recordAuthEvent(metrics services.MetricsRecorderInterface, eventType string) {
	if metrics == nil {
		return
	}
	metrics.IncrementCounter("authentication_event", map[string]string{"event_type": eventType})
}
