package schema

import (
	"strings"

	"meeting-archaeologist/internal/extraction"
)

const (
	FeedbackHeader  = "PREVIOUS ATTEMPT FAILED VALIDATION:"
	FeedbackTrailer = "Correct the errors and retry."
)

// ComposeFeedback renders violations as corrective text for the next prompt.
// The output depends only on the violations and their order.
func ComposeFeedback(violations extraction.Violations) string {
	lines := make([]string, 0, len(violations)+2)
	lines = append(lines, FeedbackHeader)
	for _, v := range violations {
		lines = append(lines, v.Path+": "+v.Message)
	}
	lines = append(lines, "", FeedbackTrailer)
	return strings.Join(lines, "\n")
}
