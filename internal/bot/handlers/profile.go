package handlers

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	"gorm.io/gorm"
)

// /profile shows the sender's own profile card.
func HandleProfile(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		profile, err := ctx.Profiles.GetByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Send(
					"❌ Профиль не найден\n\nСоздай профиль в приложении!",
					openAppKeyboard(ctx, "✏️ Создать профиль"),
				)
			}
			ctx.Logger.Error("profile lookup failed", zap.Int64("user_id", userID), zap.Error(err))
			return c.Send("😔 Ошибка. Попробуйте позже.")
		}

		name := profile.FirstName
		if name == "" {
			name = "Пользователь"
		}
		status := profile.Status
		if status == "" {
			status = "networking"
		}

		text := fmt.Sprintf("👤 <b>%s</b>\n\n🤝 Статус: %s", name, status)
		if profile.Bio != "" {
			text += fmt.Sprintf("\n\n📝 %s", truncateRunes(profile.Bio, 300))
		}

		return c.Send(text, openAppKeyboard(ctx, "📝 Редактировать"), tele.ModeHTML)
	}
}
