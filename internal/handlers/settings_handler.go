package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"networking-hub/internal/models"
	"networking-hub/internal/repositories"
)

// SettingsHandler handles per-profile preference updates: language,
// theme, glass effect, networking status and presence.
type SettingsHandler struct {
	profileRepository repositories.ProfileRepository
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(profileRepo repositories.ProfileRepository) *SettingsHandler {
	return &SettingsHandler{profileRepository: profileRepo}
}

// RegisterSettingsRoutes registers settings routes
func (h *SettingsHandler) RegisterSettingsRoutes(g *echo.Group) {
	g.PUT("/settings/language", h.SaveLanguage)
	g.PUT("/settings/theme", h.SaveTheme)
	g.PUT("/settings/custom-theme", h.SaveCustomTheme)
	g.PUT("/settings/glass", h.SaveGlassPreference)
	g.PUT("/settings/status", h.SaveStatus)
	g.PUT("/settings/presence", h.TouchPresence)
}

// SaveLanguage stores the UI language
func (h *SettingsHandler) SaveLanguage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.UpdateLanguageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid language code")
	}

	if err := h.profileRepository.UpdateLanguage(currentUserID, req.Lang); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// SaveTheme stores the visual theme
func (h *SettingsHandler) SaveTheme(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.UpdateThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid theme value")
	}

	if err := h.profileRepository.UpdateTheme(currentUserID, req.Theme); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// SaveCustomTheme stores a custom color map and switches the theme to
// "custom" in the same update.
func (h *SettingsHandler) SaveCustomTheme(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.UpdateCustomThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No colors provided")
	}

	colorsJSON, err := json.Marshal(req.Colors)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid colors payload")
	}

	if err := h.profileRepository.UpdateCustomTheme(currentUserID, string(colorsJSON)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// SaveGlassPreference stores the glass-effect flag
func (h *SettingsHandler) SaveGlassPreference(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.UpdateGlassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid is_enabled flag")
	}

	if err := h.profileRepository.UpdateGlass(currentUserID, *req.IsEnabled); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// SaveStatus stores the networking status
func (h *SettingsHandler) SaveStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status value")
	}

	if err := h.profileRepository.UpdateStatus(currentUserID, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// TouchPresence bumps the caller's last-seen timestamp
func (h *SettingsHandler) TouchPresence(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	if err := h.profileRepository.TouchLastSeen(currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
