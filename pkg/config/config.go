package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all process configuration, loaded from the environment.
type Config struct {
	Port        string
	Env         string
	PostgresURL string

	BotToken    string
	BotUsername string
	AppSlug     string
	BackendURL  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	UploadDir       string
	NotifyWorkers   int
	AdminUserIDsRaw string

	LogLevel string
}

// Load reads configuration from the environment, with a .env file as a
// fallback source for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		PostgresURL:     os.Getenv("POSTGRES_CONN_STR"),
		BotToken:        os.Getenv("BOT_TOKEN"),
		BotUsername:     os.Getenv("BOT_USERNAME"),
		AppSlug:         getEnv("APP_SLUG", "app"),
		BackendURL:      getEnv("BACKEND_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		UploadDir:       getEnv("UPLOAD_FOLDER", "uploads"),
		AdminUserIDsRaw: os.Getenv("ADMIN_USER_IDS"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_CONN_STR is required")
	}

	var err error
	cfg.RedisDB, err = getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.NotifyWorkers, err = getEnvInt("NOTIFY_WORKERS", 4)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// AdminUserIDs parses the comma-separated admin list. Malformed entries
// are skipped.
func (c *Config) AdminUserIDs() []int64 {
	var ids []int64
	for _, part := range strings.Split(c.AdminUserIDsRaw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
