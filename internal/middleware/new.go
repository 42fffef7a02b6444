package middleware

import (
	"book-chatbot/config"
	"book-chatbot/pkg/log"
)

type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

func New(l log.Logger, rl config.RateLimitConfig) Middleware {
	return Middleware{
		l:       l,
		limiter: newRateLimiter(rl.PerMin, rl.Burst),
	}
}
