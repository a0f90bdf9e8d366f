package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "sms_backend/internals/helpers"
)

// GlobalRateLimiter caps requests per IP per minute. limit <= 0 disables it.
func GlobalRateLimiter(limit int) fiber.Handler {
	if limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	})
}
