package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "skb_backend/internals/helpers"
)

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter for every endpoint
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(100, time.Minute, "too many requests, please try again later")
}

// Login is stricter
func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, time.Minute, "too many login attempts, please wait a moment")
}

// Public registration endpoints (members, tournaments, notices)
func RegisterRateLimiter() fiber.Handler {
	return newLimiter(10, 5*time.Minute, "too many registration attempts, please wait a few minutes")
}
