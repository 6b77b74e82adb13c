package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"networking-hub/internal/auth"
)

// ContextUserIDKey is the echo context key holding the verified
// Telegram user ID.
const ContextUserIDKey = "userID"

// InitDataAuthMiddleware verifies the Telegram init data carried in the
// Authorization header ("tma <initData>") and stores the caller's user
// ID in the request context. Every failure is a generic 403 so callers
// cannot probe which check rejected them.
func InitDataAuthMiddleware(verifier *auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid data")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "tma" {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid data")
			}

			userID, err := verifier.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid data")
			}

			c.Set(ContextUserIDKey, userID)

			return next(c)
		}
	}
}
