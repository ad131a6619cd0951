package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"meeting-archaeologist/internal/extraction"
	"meeting-archaeologist/internal/extraction/schema"
	"meeting-archaeologist/pkg/llmprovider"
)

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// Options tunes the generation request.
type Options struct {
	Temperature     float64
	MaxOutputTokens int
}

type implGenerator struct {
	provider llmprovider.Provider
	opts     Options
}

// New creates a Generator that asks provider for a JSON candidate.
func New(provider llmprovider.Provider, opts Options) extraction.Generator {
	return &implGenerator{provider: provider, opts: opts}
}

// Model returns the model of the primary provider.
func (g *implGenerator) Model() string {
	return g.provider.Model()
}

// Generate makes exactly one provider call and decodes the reply.
// Numbers are kept as json.Number so the validator sees the literal value.
func (g *implGenerator) Generate(ctx context.Context, prompt string) (any, error) {
	resp, err := g.provider.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: SystemPrompt,
		Prompt:            prompt,
		ResponseSchema:    schema.ResponseSchema(),
		JSONOutput:        true,
		Temperature:       g.opts.Temperature,
		MaxTokens:         g.opts.MaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	candidate, err := decodeCandidate(resp.Text)
	if err != nil {
		return nil, &llmprovider.ProviderError{
			Provider: resp.ProviderName,
			Kind:     llmprovider.ErrMalformedOutput,
			Err:      err,
		}
	}
	return candidate, nil
}

// decodeCandidate parses the reply as a bare JSON document first. Fence and
// prose stripping is only a fallback, so fenced snippets quoted inside a
// valid document are left alone.
func decodeCandidate(text string) (any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.New("empty model output")
	}

	candidate, err := decodeJSON(trimmed)
	if err == nil {
		return candidate, nil
	}

	if cleaned := sanitizeJSONResponse(trimmed); cleaned != "" && cleaned != trimmed {
		if candidate, cleanErr := decodeJSON(cleaned); cleanErr == nil {
			return candidate, nil
		}
	}
	return nil, err
}

func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var candidate any
	if err := dec.Decode(&candidate); err != nil {
		return nil, fmt.Errorf("model output is not JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("model output has trailing data after the JSON value")
	}
	return candidate, nil
}

// sanitizeJSONResponse removes markdown code fences and leading/trailing prose
// that LLMs often add around JSON output.
func sanitizeJSONResponse(text string) string {
	if matches := fencePattern.FindStringSubmatch(text); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return strings.TrimSpace(text)
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[start : end+1])
}
