// Package middleware provides request logging and rate limiting for the API.
package middleware

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// NewLogger builds the JSON structured logger the application logs through.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// RequestLogger returns a Fiber middleware logging each request through log.
func RequestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
		}
		if rid := c.Locals("requestid"); rid != nil {
			fields = append(fields, slog.Any("request_id", rid))
		}
		if sid := c.Locals("sessionID"); sid != nil {
			fields = append(fields, slog.Any("session_id", sid))
		}

		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			log.Error("request failed", fields...)
		} else {
			log.Info("request processed", fields...)
		}

		return err
	}
}
