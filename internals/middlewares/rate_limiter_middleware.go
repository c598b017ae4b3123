package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"

	helper "suryaghar_backend/internals/helpers"
)

// limiterStorage is shared by every limiter; nil keeps counters in memory.
var limiterStorage fiber.Storage

// UseRedisLimiterStorage switches all limiters built afterwards to Redis.
func UseRedisLimiterStorage(client *redis.Client) {
	if client == nil {
		limiterStorage = nil
		return
	}
	limiterStorage = NewRedisStorage(client, "limiter:")
}

func newLimiter(name string, max int, exp time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: exp,
		Storage:    limiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter for ordinary endpoints
func GlobalRateLimiter() fiber.Handler {
	return newLimiter("global", 100, 1*time.Minute, "❌ Too many requests. Please try again later.")
}

// Stricter limiter for the login route
func LoginRateLimiter() fiber.Handler {
	return newLimiter("login", 5, 1*time.Minute, "❌ Too many login attempts. Please wait a moment.")
}

func RegisterRateLimiter() fiber.Handler {
	return newLimiter("register", 3, 5*time.Minute, "❌ Too many sign-up attempts. Please wait a few minutes.")
}

// OTPRateLimiter caps sign-up code mails per IP.
func OTPRateLimiter() fiber.Handler {
	return newLimiter("otp", 2, 10*time.Minute, "❌ Too many code requests. Please try again in 10 minutes.")
}

// SubmissionRateLimiter guards the public forms that accept uploads.
func SubmissionRateLimiter() fiber.Handler {
	return newLimiter("submit", 10, 10*time.Minute, "❌ Too many submissions. Please try again later.")
}
