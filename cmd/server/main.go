package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"networking-hub/internal/auth"
	"networking-hub/internal/notify"
	"networking-hub/internal/repositories"
	"networking-hub/internal/router"
	"networking-hub/pkg/config"
	"networking-hub/pkg/logger"
	"networking-hub/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting API server", zap.String("env", cfg.Env), zap.String("port", cfg.Port))

	db, err := config.InitDB(cfg.PostgresURL)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer config.CloseDB(db)

	// The server only sends messages, polling belongs to cmd/bot.
	tgBot, err := tele.NewBot(tele.Settings{Token: cfg.BotToken})
	if err != nil {
		log.Fatal("failed to create Telegram client", zap.Error(err))
	}
	channel := notify.NewTelegramChannel(tgBot)

	links := notify.LinkBuilder{BotUsername: cfg.BotUsername, AppSlug: cfg.AppSlug}

	dispatcher := notify.NewDispatcher(
		channel,
		repositories.NewPostgresProfileRepository(db),
		repositories.NewPostgresFollowRepository(db),
		repositories.NewPostgresNotificationRepository(db),
		links,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go dispatcher.Run(ctx, cfg.NotifyWorkers)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)

	deps := router.Deps{
		Verifier:   auth.NewVerifier(cfg.BotToken),
		Dispatcher: dispatcher,
		Channel:    channel,
		Chats:      channel,
		Logger:     log,
	}
	if err := router.SetupRoutes(e, db, cfg, deps); err != nil {
		log.Fatal("failed to set up routes", zap.Error(err))
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info("server stopped", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("received shutdown signal", zap.String("signal", sig.String()))

	cancel()
	if err := e.Shutdown(context.Background()); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}

	log.Info("server stopped gracefully")
}
