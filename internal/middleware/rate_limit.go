package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/Payphone-Digital/admin-panel/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RateLimiter is a sliding-window limiter keyed by client address
type RateLimiter struct {
	tokens     map[string][]time.Time
	maxRequest int
	duration   time.Duration
	lastSweep  time.Time
	mu         sync.Mutex
}

func NewRateLimiter(maxRequest int, duration time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     make(map[string][]time.Time),
		maxRequest: maxRequest,
		duration:   duration,
	}
}

// must hold lock
func (rl *RateLimiter) prune(key string, now time.Time) []time.Time {
	tokens := rl.tokens[key]
	i := 0
	for i < len(tokens) && now.Sub(tokens[i]) > rl.duration {
		i++
	}
	tokens = tokens[i:]
	if len(tokens) == 0 {
		delete(rl.tokens, key)
		return nil
	}
	rl.tokens[key] = tokens
	return tokens
}

// must hold lock
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.duration {
		return
	}
	rl.lastSweep = now
	for key := range rl.tokens {
		rl.prune(key, now)
	}
}

// Allow records a request for key and reports whether it is within the limit
// along with the requests left in the current window.
func (rl *RateLimiter) Allow(key string, now time.Time) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)
	tokens := rl.prune(key, now)
	if len(tokens) >= rl.maxRequest {
		return false, 0
	}

	rl.tokens[key] = append(tokens, now)
	return true, rl.maxRequest - len(tokens) - 1
}

func RateLimit(maxRequest int, duration time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(maxRequest, duration)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		allowed, remaining := limiter.Allow(ip, now)
		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequest))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			logger.WarnWithContext(c.Request.Context(), "Rate limit exceeded").
				String("client_ip", ip).
				String("method", c.Request.Method).
				String("path", c.Request.URL.Path).
				Int("max_requests", maxRequest).
				Duration(duration).
				Log()

			c.Header("Retry-After", strconv.Itoa(int(duration.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, constants.BuildErrorResponse(constants.MsgRateLimited, nil))
			return
		}

		c.Next()
	}
}
