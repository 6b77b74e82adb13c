package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"networking-hub/internal/bot"
	"networking-hub/internal/cache"
	"networking-hub/internal/repositories"
	"networking-hub/pkg/config"
	"networking-hub/pkg/logger"
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

	log.Info("starting Telegram bot", zap.String("log_level", cfg.LogLevel))

	db, err := config.InitDB(cfg.PostgresURL)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer config.CloseDB(db)

	log.Info("PostgreSQL connected successfully")

	// Rate limiting degrades gracefully when Redis is absent.
	var redisCache *cache.Redis
	if cfg.RedisAddr != "" {
		redisCache, err = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.Warn("failed to connect to Redis, rate limiting disabled", zap.Error(err))
			redisCache = nil
		} else {
			defer redisCache.Close()
			log.Info("Redis connected successfully")
		}
	}

	repos := bot.Repositories{
		Profiles:      repositories.NewPostgresProfileRepository(db),
		Posts:         repositories.NewPostgresPostRepository(db),
		Follows:       repositories.NewPostgresFollowRepository(db),
		Notifications: repositories.NewPostgresNotificationRepository(db),
	}

	tgBot, err := bot.New(cfg, repos, redisCache, log)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	log.Info("bot is running...")

	if err := tgBot.Start(ctx); err != nil {
		log.Error("bot stopped with error", zap.Error(err))
	}

	log.Info("bot stopped gracefully")
}
