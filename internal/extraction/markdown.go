package extraction

import (
	"fmt"
	"math"
	"strings"
)

// ToMarkdown renders a result as a Markdown report of decisions and tasks.
// Noise is omitted.
func ToMarkdown(r Result) string {
	var sb strings.Builder

	if len(r.Decisions) > 0 {
		sb.WriteString("## Decisions\n\n")
		for _, d := range r.Decisions {
			fmt.Fprintf(&sb, "- %s (Confidence: %d%%)\n", d.Statement, percent(d.Confidence))
		}
		sb.WriteString("\n")
	}

	if len(r.Tasks) > 0 {
		sb.WriteString("## Tasks\n\n")
		for _, t := range r.Tasks {
			fmt.Fprintf(&sb, "- [%s][%s][%d] %s\n", t.Priority, t.Domain, t.Complexity, t.Title)
			fmt.Fprintf(&sb, "  Description: %s\n", t.Description)
			if t.OwnerHint != nil && *t.OwnerHint != "" {
				fmt.Fprintf(&sb, "  Owner: %s\n", *t.OwnerHint)
			}
			fmt.Fprintf(&sb, "  Confidence: %d%%\n", percent(t.Confidence))
			if t.Reasoning != nil && *t.Reasoning != "" {
				fmt.Fprintf(&sb, "  Reasoning: %s\n", *t.Reasoning)
			}
			sb.WriteString("\n")
		}
	}

	return strings.TrimSpace(sb.String())
}

func percent(confidence float64) int {
	return int(math.Round(confidence * 100))
}
