package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"networking-hub/internal/middleware"
)

// getUserIDFromContext returns the verified Telegram user ID stored by
// the auth middleware, or 0 when the request is unauthenticated.
func getUserIDFromContext(c echo.Context) int64 {
	id, _ := c.Get(middleware.ContextUserIDKey).(int64)
	return id
}

// validationError rejects a request with the machine-readable key and
// violated limit, so the front-end can render a localized message.
func validationError(c echo.Context, key string, limit int) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"success": false,
		"error":   "validation",
		"details": echo.Map{"key": key, "limit": limit},
	})
}
