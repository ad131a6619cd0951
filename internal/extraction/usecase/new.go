package usecase

import (
	"time"

	"meeting-archaeologist/internal/extraction"
	pkgLog "meeting-archaeologist/pkg/log"
)

// Config holds the retry loop settings. It is read-only after New.
type Config struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries     int
	AttemptTimeout time.Duration
	// MinInputLength and MaxInputLength are counted in characters (runes).
	// MaxInputLength 0 means unbounded.
	MinInputLength int
	MaxInputLength int
}

type implUseCase struct {
	l       pkgLog.Logger
	gen     extraction.Generator
	cfg     Config
	metrics *Metrics
}

// New creates a new extraction UseCase instance.
func New(l pkgLog.Logger, gen extraction.Generator, cfg Config) extraction.UseCase {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &implUseCase{
		l:       l,
		gen:     gen,
		cfg:     cfg,
		metrics: NewMetrics(),
	}
}
