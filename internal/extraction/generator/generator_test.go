package generator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-archaeologist/pkg/llmprovider"
)

type stubProvider struct {
	text    string
	err     error
	lastReq *llmprovider.Request
}

func (s *stubProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &llmprovider.Response{Text: s.text, ProviderName: "stub", ModelName: "stub-1"}, nil
}

func (s *stubProvider) Name() string  { return "stub" }
func (s *stubProvider) Model() string { return "stub-1" }

func TestGenerate_DecodesWithNumbers(t *testing.T) {
	p := &stubProvider{text: "```json\n{\"decisions\":[{\"statement\":\"s\",\"confidence\":1.0}]}\n```"}
	g := New(p, Options{Temperature: 0.2, MaxOutputTokens: 512})

	out, err := g.Generate(context.Background(), "meeting text")
	require.NoError(t, err)

	root := out.(map[string]any)
	decision := root["decisions"].([]any)[0].(map[string]any)
	assert.Equal(t, json.Number("1.0"), decision["confidence"])

	require.NotNil(t, p.lastReq)
	assert.Equal(t, "meeting text", p.lastReq.Prompt)
	assert.Equal(t, SystemPrompt, p.lastReq.SystemInstruction)
	assert.NotNil(t, p.lastReq.ResponseSchema)
	assert.True(t, p.lastReq.JSONOutput)
	assert.Equal(t, 512, p.lastReq.MaxTokens)
	assert.Equal(t, "stub-1", g.Model())
}

func TestGenerate_MalformedOutput(t *testing.T) {
	for _, text := range []string{"", "I cannot help with that", `{"tasks": [`, `{"a":1} {"b":2}`} {
		g := New(&stubProvider{text: text}, Options{})
		_, err := g.Generate(context.Background(), "meeting text")
		assert.True(t, errors.Is(err, llmprovider.ErrMalformedOutput), "text %q: got %v", text, err)
	}
}

func TestGenerate_BareJSONWithFencedSnippetInText(t *testing.T) {
	reply := "{\"noise\":[{\"text\":\"someone pasted ```json\\n{\\\"x\\\":1}\\n``` in chat\",\"reason\":\"off topic\"}]}"
	g := New(&stubProvider{text: reply}, Options{})

	out, err := g.Generate(context.Background(), "meeting text")
	require.NoError(t, err)

	root, ok := out.(map[string]any)
	require.True(t, ok)
	require.Contains(t, root, "noise")
	item := root["noise"].([]any)[0].(map[string]any)
	assert.Contains(t, item["text"], "someone pasted")
	assert.NotContains(t, root, "x")
}

func TestGenerate_ProviderErrorPassesThrough(t *testing.T) {
	cause := &llmprovider.ProviderError{Provider: "stub", StatusCode: 429, Kind: llmprovider.ErrProviderRateLimited, Err: errors.New("quota")}
	g := New(&stubProvider{err: cause}, Options{})

	_, err := g.Generate(context.Background(), "meeting text")
	assert.ErrorIs(t, err, llmprovider.ErrProviderRateLimited)
}

func TestSanitizeJSONResponse(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "Here you go: {\"a\":1} hope it helps", want: `{"a":1}`},
		{in: "  {\"a\":1}  ", want: `{"a":1}`},
		{in: "no json here", want: "no json here"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeJSONResponse(tt.in))
	}
}
