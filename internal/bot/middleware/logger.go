package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logger middleware for logging all incoming messages
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			var userID int64
			var username string
			if user := c.Sender(); user != nil {
				userID = user.ID
				username = user.Username
			}

			var messageText string
			if message := c.Message(); message != nil {
				messageText = message.Text
			}

			err := next(c)

			fields := []zap.Field{
				zap.Int64("user_id", userID),
				zap.String("username", username),
				zap.String("text", messageText),
				zap.Duration("duration", time.Since(start)),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				logger.Error("handler error", fields...)
			} else {
				logger.Info("update handled", fields...)
			}

			return err
		}
	}
}
