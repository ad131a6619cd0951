package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"meeting-archaeologist/config"
	"meeting-archaeologist/pkg/response"
)

const (
	defaultMaxClients   = 10000
	defaultClientExpiry = 10 * time.Minute
)

// clientLimiter keeps one token bucket per client IP. Idle clients expire
// from the LRU so memory stays bounded.
type clientLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newClientLimiter(cfg config.RateLimitConfig) *clientLimiter {
	size := cfg.MaxClients
	if size <= 0 {
		size = defaultMaxClients
	}
	ttl := cfg.ClientExpiry
	if ttl <= 0 {
		ttl = defaultClientExpiry
	}
	burst := cfg.PerMinute / 10
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](size, nil, ttl),
		rate:     rate.Limit(float64(cfg.PerMinute) / 60.0),
		burst:    burst,
	}
}

// limiterFor returns the bucket of key, creating it on first use. Lookup and
// insert happen under one lock so concurrent first requests share a bucket.
func (cl *clientLimiter) limiterFor(key string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if limiter, ok := cl.limiters.Get(key); ok {
		return limiter
	}
	limiter := rate.NewLimiter(cl.rate, cl.burst)
	cl.limiters.Add(key, limiter)
	return limiter
}

func (cl *clientLimiter) allow(key string) bool {
	return cl.limiterFor(key).Allow()
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
			m.l.Warnf(c.Request.Context(), "RateLimit: client %s exceeded its request budget", ip)
			response.Fail(c, http.StatusTooManyRequests, response.ErrorResp{
				Error:   "RATE_LIMIT_EXCEEDED",
				Message: "Too many requests. Please retry later.",
			})
			return
		}
		c.Next()
	}
}
