package middleware

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"networking-hub/internal/cache"
)

const (
	userRateLimit  = 20
	userRateWindow = time.Minute
)

// RateLimit caps how many updates a single user may send per window.
// Redis being unavailable fails open: the bot keeps answering.
func RateLimit(redis *cache.Redis, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			key := fmt.Sprintf("ratelimit:user:%d", sender.ID)
			n, err := redis.IncrWithTTL(ctx, key, userRateWindow)
			if err != nil {
				logger.Warn("rate limit check failed", zap.Int64("user_id", sender.ID), zap.Error(err))
				return next(c)
			}

			if n > userRateLimit {
				if n == userRateLimit+1 {
					_ = c.Send("⏳ Слишком много запросов. Подожди минуту.")
				}
				return nil
			}

			return next(c)
		}
	}
}
