package handlers

import (
	"go.uber.org/zap"

	"networking-hub/internal/notify"
	"networking-hub/internal/repositories"
	"networking-hub/pkg/config"
)

// Context bundles the dependencies shared by all bot handlers.
type Context struct {
	Profiles      repositories.ProfileRepository
	Posts         repositories.PostRepository
	Follows       repositories.FollowRepository
	Notifications repositories.NotificationRepository
	Links         notify.LinkBuilder
	Config        *config.Config
	Logger        *zap.Logger
}

// IsAdmin reports whether the user is in the configured admin list.
func (ctx *Context) IsAdmin(userID int64) bool {
	for _, id := range ctx.Config.AdminUserIDs() {
		if id == userID {
			return true
		}
	}
	return false
}
