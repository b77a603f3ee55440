package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"candidate-tracker-backend/internal/delivery/http/response"
	"candidate-tracker-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

var (
	rateLimitStore sync.Map
	cleanupOnce    sync.Once
)

// Atomic increment with TTL set on first hit.
// KEYS[1] = counter key, ARGV[1] = TTL seconds. Returns current count.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func startCleanup() {
	go func() {
		for range time.Tick(time.Minute) {
			now := time.Now()
			rateLimitStore.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				expired := now.After(entry.resetAt)
				entry.mu.Unlock()
				if expired {
					rateLimitStore.Delete(key)
				}
				return true
			})
		}
	}()
}

// allowInMemory is the fallback counter used when Redis is unavailable.
func allowInMemory(key string, cfg RateLimitConfig) bool {
	cleanupOnce.Do(startCleanup)

	now := time.Now()
	value, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(cfg.Window)})
	entry := value.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(cfg.Window)
	}
	entry.count++
	return entry.count <= cfg.Limit
}

func allowRedis(ctx context.Context, client *goredis.Client, key string, cfg RateLimitConfig) (bool, error) {
	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, int(cfg.Window.Seconds())).Int64()
	if err != nil {
		return false, err
	}
	return result <= int64(cfg.Limit), nil
}

// RateLimit limits requests per client IP within a window. Counters live in
// Redis when it is configured so the limit holds across server instances,
// with an in-memory fallback otherwise.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:ip:"
	}

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + c.ClientIP()

		allowed := false
		if client := redis.Client(); client != nil {
			ok, err := allowRedis(c.Request.Context(), client, key, cfg)
			if err == nil {
				allowed = ok
			} else {
				allowed = allowInMemory(key, cfg)
			}
		} else {
			allowed = allowInMemory(key, cfg)
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
