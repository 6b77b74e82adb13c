package handlers

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /stats is admin-only and reports table counts.
func HandleStats(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		if !ctx.IsAdmin(userID) {
			return c.Send("⛔ Команда доступна только администраторам")
		}

		profiles, err := ctx.Profiles.Count()
		if err != nil {
			ctx.Logger.Error("profile count failed", zap.Error(err))
			return c.Send("😔 Ошибка. Попробуйте позже.")
		}
		posts, err := ctx.Posts.Count()
		if err != nil {
			ctx.Logger.Error("post count failed", zap.Error(err))
			return c.Send("😔 Ошибка. Попробуйте позже.")
		}
		follows, err := ctx.Follows.Count()
		if err != nil {
			ctx.Logger.Error("follow count failed", zap.Error(err))
			return c.Send("😔 Ошибка. Попробуйте позже.")
		}

		text := fmt.Sprintf(`📊 <b>Статистика</b>

👤 Профилей: %d
📝 Постов: %d
🤝 Подписок: %d`, profiles, posts, follows)

		return c.Send(text, tele.ModeHTML)
	}
}
