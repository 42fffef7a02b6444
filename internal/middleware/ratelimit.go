package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"book-chatbot/pkg/response"
)

const (
	limiterMaxClients = 10000
	limiterTTL        = 5 * time.Minute
)

// rateLimiter keeps one token bucket per client; idle buckets expire.
type rateLimiter struct {
	mu       sync.Mutex // makes get-or-create atomic per key
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// newRateLimiter returns nil when perMin is not positive, which disables limiting.
func newRateLimiter(perMin, burst int) *rateLimiter {
	if perMin <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = max(perMin/10, 1)
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](limiterMaxClients, nil, limiterTTL),
		rate:     rate.Limit(float64(perMin) / 60.0),
		burst:    burst,
	}
}

func (rl *rateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter
}

func (rl *rateLimiter) allow(key string) bool {
	return rl.limiterFor(key).Allow()
}

// RateLimit rejects clients that exceed their request budget with 429.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if !m.limiter.allow(ip) {
			m.l.Warnf(c.Request.Context(), "middleware.RateLimit: limit exceeded for %s", ip)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
