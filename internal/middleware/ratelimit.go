package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// allow checks the counter for one resource/id pair. Fail-open: a nil client
// or a Redis error never blocks a request.
func allow(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) bool {
	if rdb == nil {
		return true
	}
	key := fmt.Sprintf("rl:%s:%s", resource, id)
	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if cnt == 1 {
		rdb.Expire(ctx, key, window)
	}
	return cnt <= int64(limit)
}

// RateLimit returns a Fiber middleware enforcing limit requests per window
// for the named resource, keyed by session when authenticated, otherwise by
// remote IP.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id string
		if sid := c.Locals("sessionID"); sid != nil {
			id = fmt.Sprintf("session:%v", sid)
		} else {
			id = "ip:" + c.IP()
		}

		if !allow(c.UserContext(), rdb, resource, id, limit, window) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
