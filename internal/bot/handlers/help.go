package handlers

import (
	tele "gopkg.in/telebot.v3"
)

// /help
func HandleHelp(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		text := `📋 Команды:

👤 /start - Главное меню
📊 /profile - Твой профиль
🔔 /notifications - Уведомления

💡 Основной функционал в Mini App`

		if ctx.IsAdmin(c.Sender().ID) {
			text += "\n\n🔧 Админ:\n📊 /stats - Статистика"
		}

		return c.Send(text, tele.ModeHTML)
	}
}
