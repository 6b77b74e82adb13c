package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Recovery middleware for panic handling
func Recovery(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						zap.Any("panic", r),
						zap.Stack("stack"),
						zap.Int64("user_id", c.Sender().ID),
					)

					_ = c.Send("😔 Произошла ошибка. Пожалуйста, попробуйте позже.")
				}
			}()

			return next(c)
		}
	}
}
