package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/utils"
)

// RateLimit allows limit requests per client IP within a sliding window.
func RateLimit(limit int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               limit,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      utils.GetIPAddress,
		LimitReached: func(c *fiber.Ctx) error {
			slog.Warn("Rate limit exceeded",
				slog.String("type", "http"),
				slog.String("ip", utils.GetIPAddress(c)),
				slog.String("path", c.Path()),
				slog.String("method", c.Method()),
				slog.Int("limit", limit),
				slog.Duration("window", window))

			return utils.SendError(c, fiber.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				"Too many requests. Please try again later.", nil)
		},
	})
}

// AuthRateLimit guards the login flow.
func AuthRateLimit() fiber.Handler {
	return RateLimit(5, time.Minute)
}

func APIRateLimit() fiber.Handler {
	return RateLimit(100, time.Minute)
}

// UploadRateLimit guards artwork and frame uploads.
func UploadRateLimit() fiber.Handler {
	return RateLimit(10, time.Hour)
}
