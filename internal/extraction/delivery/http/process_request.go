package http

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *handler) processParseReq(c *gin.Context) (parseReq, error) {
	ctx := c.Request.Context()

	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "http.processParseReq: bind: %v", err)
		return req, fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	req.Format = strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", formatJSON)))
	if err := req.validate(); err != nil {
		h.l.Warnf(ctx, "http.processParseReq: %v", err)
		return req, err
	}

	return req, nil
}
