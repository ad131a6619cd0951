package middleware

import (
	"meeting-archaeologist/config"
	"meeting-archaeologist/pkg/log"
)

type Middleware struct {
	l       log.Logger
	cors    config.CORSConfig
	limiter *clientLimiter
}

// New builds the shared middleware set. A nil limiter disables rate limiting.
func New(l log.Logger, cfg *config.Config) Middleware {
	mw := Middleware{
		l:    l,
		cors: cfg.CORS,
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.PerMinute > 0 {
		mw.limiter = newClientLimiter(cfg.RateLimit)
	}
	return mw
}
