package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// IssueRateLimit caps code generation per household per minute, falling back
// to the caller IP when the body carries no household id. Without Redis, or
// when Redis errors, the limiter fails open.
func IssueRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 10
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next()
		}
		var req struct {
			HouseholdID string `json:"household_id"`
		}
		_ = c.BodyParser(&req)
		subject := strings.TrimSpace(req.HouseholdID)
		if subject == "" {
			subject = c.IP()
		}
		key := "rl:issue:" + subject
		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err == nil && cnt == 1 {
			cache.Expire(c.UserContext(), key, time.Minute)
		}
		if err != nil {
			return c.Next()
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "too many code requests, try again later")
		}
		return c.Next()
	}
}
