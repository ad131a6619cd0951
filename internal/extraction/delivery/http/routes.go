package http

import (
	"github.com/gin-gonic/gin"

	"meeting-archaeologist/internal/middleware"
)

// RegisterRoutes registers the extraction routes on the given group.
func RegisterRoutes(r *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	r.POST("/parse", mw.RateLimit(), h.Parse)
}
