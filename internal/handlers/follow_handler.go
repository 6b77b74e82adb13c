package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"networking-hub/internal/notify"
	"networking-hub/internal/repositories"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository  repositories.FollowRepository
	profileRepository repositories.ProfileRepository
	dispatcher        *notify.Dispatcher
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, profileRepo repositories.ProfileRepository, dispatcher *notify.Dispatcher) *FollowHandler {
	return &FollowHandler{
		followRepository:  followRepo,
		profileRepository: profileRepo,
		dispatcher:        dispatcher,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser follows a user. Re-following is a no-op and does not
// re-notify the target.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if currentUserID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	if _, err := h.profileRepository.GetByID(targetID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	created, err := h.followRepository.CreateFollow(currentUserID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if created && h.dispatcher != nil {
		followerName := "Пользователь"
		if follower, err := h.profileRepository.GetByID(currentUserID); err == nil && follower.FirstName != "" {
			followerName = follower.FirstName
		}
		h.dispatcher.Dispatch(notify.FollowEvent{
			FollowerID:   currentUserID,
			FollowerName: followerName,
			TargetID:     targetID,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if currentUserID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid target user")
	}

	if err := h.followRepository.DeleteFollow(currentUserID, targetID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}
