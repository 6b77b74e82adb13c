package bot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"networking-hub/internal/bot/handlers"
	"networking-hub/internal/bot/middleware"
	"networking-hub/internal/cache"
	"networking-hub/internal/notify"
	"networking-hub/internal/repositories"
	"networking-hub/pkg/config"
)

// Bot wraps the Telegram bot with its middleware and command handlers.
type Bot struct {
	bot    *tele.Bot
	cache  *cache.Redis
	config *config.Config
	logger *zap.Logger
}

// Repositories groups the stores the bot handlers read from.
type Repositories struct {
	Profiles      repositories.ProfileRepository
	Posts         repositories.PostRepository
	Follows       repositories.FollowRepository
	Notifications repositories.NotificationRepository
}

func New(
	cfg *config.Config,
	repos Repositories,
	redisCache *cache.Redis,
	logger *zap.Logger,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		cache:  redisCache,
		config: cfg,
		logger: logger,
	}

	bot.setupMiddleware()
	bot.registerHandlers(repos)

	logger.Info("bot initialized successfully")

	return bot, nil
}

func (b *Bot) setupMiddleware() {
	b.bot.Use(middleware.Recovery(b.logger))
	b.bot.Use(middleware.Logger(b.logger))
	if b.cache != nil {
		b.bot.Use(middleware.RateLimit(b.cache, b.logger))
	}
}

func (b *Bot) registerHandlers(repos Repositories) {
	ctx := &handlers.Context{
		Profiles:      repos.Profiles,
		Posts:         repos.Posts,
		Follows:       repos.Follows,
		Notifications: repos.Notifications,
		Links: notify.LinkBuilder{
			BotUsername: b.config.BotUsername,
			AppSlug:     b.config.AppSlug,
		},
		Config: b.config,
		Logger: b.logger,
	}

	b.bot.Handle("/start", handlers.HandleStart(ctx))
	b.bot.Handle("/help", handlers.HandleHelp(ctx))
	b.bot.Handle("/profile", handlers.HandleProfile(ctx))
	b.bot.Handle("/notifications", handlers.HandleNotifications(ctx))
	b.bot.Handle("/stats", handlers.HandleStats(ctx))

	b.logger.Info("handlers registered")
}

// Start runs long polling until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot...")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot...")
	b.bot.Stop()

	return nil
}

func (b *Bot) Stop() {
	b.logger.Info("bot stopped")
	b.bot.Stop()
}

func (b *Bot) Telebot() *tele.Bot {
	return b.bot
}
