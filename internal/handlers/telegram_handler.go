package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ChatInfoProvider looks up live Telegram account info for a chat ID.
type ChatInfoProvider interface {
	ChatInfo(chatID int64) (username, firstName string, err error)
}

// TelegramHandler proxies Telegram account lookups for the front-end
type TelegramHandler struct {
	chats ChatInfoProvider
}

// NewTelegramHandler creates a new TelegramHandler
func NewTelegramHandler(chats ChatInfoProvider) *TelegramHandler {
	return &TelegramHandler{chats: chats}
}

// RegisterTelegramRoutes registers Telegram lookup routes
func (h *TelegramHandler) RegisterTelegramRoutes(g *echo.Group) {
	g.GET("/users/:id/telegram", h.GetTelegramInfo)
}

// GetTelegramInfo returns the target's Telegram username and first
// name. Lookup failures degrade to a null username rather than an
// error: the front-end falls back to the stored profile name.
func (h *TelegramHandler) GetTelegramInfo(c echo.Context) error {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	username, firstName, err := h.chats.ChatInfo(targetID)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data":    echo.Map{"user_id": targetID, "username": nil},
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user_id":    targetID,
			"username":   username,
			"first_name": firstName,
		},
	})
}
