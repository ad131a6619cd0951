package http

import (
	"meeting-archaeologist/internal/extraction"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"

	markdownContentType = "text/markdown; charset=utf-8"
)

type parseReq struct {
	RawText string `json:"raw_text" binding:"required"`
	Format  string `json:"-"`
}

func (r parseReq) validate() error {
	switch r.Format {
	case formatJSON, formatMarkdown:
		return nil
	default:
		return errUnsupportedFormat
	}
}

func (r parseReq) toInput() extraction.ExtractInput {
	return extraction.ExtractInput{RawText: r.RawText}
}

// violationResp is one validator finding as exposed to clients.
type violationResp struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func newViolationsResp(vs extraction.Violations) []violationResp {
	if len(vs) == 0 {
		return nil
	}
	out := make([]violationResp, 0, len(vs))
	for _, v := range vs {
		out = append(out, violationResp{Path: v.Path, Message: v.Message})
	}
	return out
}
