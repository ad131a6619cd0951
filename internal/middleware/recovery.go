package middleware

import (
	"github.com/gin-gonic/gin"

	"meeting-archaeologist/pkg/response"
)

// Recovery turns a panic into a logged 500 with the standard envelope.
func (m Middleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		m.l.Errorf(c.Request.Context(), "panic recovered: %v", recovered)
		response.InternalError(c)
	})
}
