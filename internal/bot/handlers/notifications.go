package handlers

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"networking-hub/internal/models"
)

const unreadPageSize = 10

// /notifications lists the latest unread notifications and marks the
// whole inbox read afterwards.
func HandleNotifications(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		notifs, err := ctx.Notifications.GetUnread(userID, unreadPageSize)
		if err != nil {
			ctx.Logger.Error("unread notifications lookup failed", zap.Int64("user_id", userID), zap.Error(err))
			return c.Send("⚠️ Ошибка загрузки уведомлений")
		}

		if len(notifs) == 0 {
			return c.Send("🔔 Новых уведомлений нет")
		}

		if err := ctx.Notifications.MarkAllAsRead(userID); err != nil {
			ctx.Logger.Warn("mark notifications read failed", zap.Int64("user_id", userID), zap.Error(err))
		}

		text := "🔔 Уведомления:\n\n"
		for _, n := range notifs {
			text += notificationIcon(n.Kind) + " " + n.Message + "\n\n"
		}

		return c.Send(text, tele.ModeHTML)
	}
}

func notificationIcon(kind models.NotificationKind) string {
	switch kind {
	case models.KindFollow:
		return "👤"
	case models.KindResponseRequest:
		return "💬"
	case models.KindSkillMatch:
		return "🎯"
	default:
		return "🔔"
	}
}
