package http

import (
	"github.com/gin-gonic/gin"

	"meeting-archaeologist/internal/extraction"
	"meeting-archaeologist/pkg/log"
)

// Handler is the public interface for the extraction HTTP delivery layer.
type Handler interface {
	Parse(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc extraction.UseCase
	// exposeViolations includes validator findings in error bodies.
	exposeViolations bool
}

// New creates a new HTTP handler for the extraction domain.
func New(l log.Logger, uc extraction.UseCase, exposeViolations bool) Handler {
	return &handler{
		l:                l,
		uc:               uc,
		exposeViolations: exposeViolations,
	}
}
