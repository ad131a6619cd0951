package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting-archaeologist/internal/extraction"
	"meeting-archaeologist/pkg/response"
)

// Parse godoc
// @Summary     Extract decisions, tasks and noise from meeting text
// @Description Runs the validated extraction loop over raw meeting text. Returns the
// @Description extraction result as JSON, or as Markdown when format=markdown.
// @Tags        Extraction
// @Accept      json
// @Produce     json
// @Produce     text/markdown
// @Param       body   body  parseReq true  "Raw meeting text"
// @Param       format query string   false "Response format (json or markdown, default json)"
// @Success     200 {object} extraction.Result
// @Failure     413 {object} response.ErrorResp "Token limit exceeded"
// @Failure     422 {object} response.ErrorResp "Invalid input"
// @Failure     429 {object} response.ErrorResp "Rate limit exceeded"
// @Failure     500 {object} response.ErrorResp "Extraction failed"
// @Failure     504 {object} response.ErrorResp "Language model timed out"
// @Router      /api/v1/parse [POST]
func (h *handler) Parse(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processParseReq(c)
	if err != nil {
		status, body := h.mapError(err)
		response.Fail(c, status, body)
		return
	}

	result, err := h.uc.Extract(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Extract: %v", err)
		status, body := h.mapError(err)
		response.Fail(c, status, body)
		return
	}

	if req.Format == formatMarkdown {
		c.Data(http.StatusOK, markdownContentType, []byte(extraction.ToMarkdown(result)))
		return
	}
	c.JSON(http.StatusOK, result)
}
