package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	"gorm.io/gorm"
)

// /start command. A payload of the form user<id> or p_<id> is a deep
// link shared from the app and renders a card for that profile or post
// instead of the greeting.
func HandleStart(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		payload := strings.TrimSpace(c.Message().Payload)

		ctx.Logger.Info("user started bot",
			zap.Int64("user_id", userID),
			zap.String("payload", payload),
		)

		if strings.HasPrefix(payload, "user") {
			if targetID, err := strconv.ParseInt(payload[4:], 10, 64); err == nil {
				if handled, err := sendProfileCard(ctx, c, targetID); handled {
					return err
				}
			}
		} else if strings.HasPrefix(payload, "p_") {
			if postID, err := strconv.ParseUint(payload[2:], 10, 32); err == nil {
				if handled, err := sendPostCard(ctx, c, uint(postID)); handled {
					return err
				}
			}
		}

		name := c.Sender().Username
		if name == "" {
			name = "друг"
		}

		text := fmt.Sprintf(`👋 Привет, %s!

Я бот социальной платформы для нетворкинга.

🚀 Открой Mini App чтобы:
• Создать профиль с навыками
• Найти специалистов
• Получать уведомления

📱 Команды: /help`, name)

		return c.Send(text, openAppKeyboard(ctx, "🚀 Открыть приложение"), tele.ModeHTML)
	}
}

func sendProfileCard(ctx *Context, c tele.Context, targetID int64) (bool, error) {
	profile, err := ctx.Profiles.GetByID(targetID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.Logger.Error("profile card lookup failed", zap.Int64("target_id", targetID), zap.Error(err))
		}
		return false, nil
	}

	name := profile.FirstName
	if name == "" {
		name = "Пользователь"
	}
	status := profile.Status
	if status == "" {
		status = "networking"
	}

	text := fmt.Sprintf("👤 %s\n\n🤝 %s\n", name, status)
	if profile.Bio != "" {
		text += "\n" + truncateRunes(profile.Bio, 200)
	}

	menu := &tele.ReplyMarkup{}
	btn := menu.URL("👤 Открыть профиль", ctx.Links.ProfileLink(targetID))
	menu.Inline(menu.Row(btn))

	return true, c.Send(text, menu, tele.ModeHTML)
}

func sendPostCard(ctx *Context, c tele.Context, postID uint) (bool, error) {
	post, err := ctx.Posts.GetPostByID(postID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.Logger.Error("post card lookup failed", zap.Uint("post_id", postID), zap.Error(err))
		}
		return false, nil
	}

	authorName := "Пользователь"
	if author, err := ctx.Profiles.GetByID(post.UserID); err == nil && author.FirstName != "" {
		authorName = author.FirstName
	}

	text := fmt.Sprintf("📝 %s\n\n%s\n\n👤 Автор: %s",
		strings.ToUpper(post.PostType),
		truncateRunes(post.Content, 250),
		authorName,
	)

	menu := &tele.ReplyMarkup{}
	btn := menu.URL("📄 Открыть пост", ctx.Links.PostLink(postID))
	menu.Inline(menu.Row(btn))

	return true, c.Send(text, menu, tele.ModeHTML)
}

// openAppKeyboard builds a single-button keyboard opening the Mini App.
// Falls back to a plain deep link when no backend URL is configured,
// since Telegram rejects WebApp buttons with an empty URL.
func openAppKeyboard(ctx *Context, label string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var btn tele.Btn
	if ctx.Config.BackendURL != "" {
		btn = menu.WebApp(label, &tele.WebApp{URL: ctx.Config.BackendURL})
	} else {
		btn = menu.URL(label, fmt.Sprintf("https://t.me/%s/%s", ctx.Config.BotUsername, ctx.Config.AppSlug))
	}
	menu.Inline(menu.Row(btn))
	return menu
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
