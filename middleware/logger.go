package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger writes one line per request once the handler has returned.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		fields := []zap.Field{
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if email, ok := ctx.Locals("email").(string); ok {
			fields = append(fields, zap.String("email", email))
		}
		if err != nil {
			log.Error("Request failed", append(fields, zap.Error(err))...)
			return err
		}
		log.Info("Request", fields...)
		return nil
	}
}
