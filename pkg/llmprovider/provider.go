package llmprovider

import "context"

// Provider defines the interface for LLM providers.
// Implementations must be safe for concurrent use and must not retry.
type Provider interface {
	// GenerateContent sends a single generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "qwen", "gemini")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized single-turn generation request
type Request struct {
	SystemInstruction string
	Prompt            string

	// ResponseSchema is an OpenAPI-subset schema for structured output.
	// Providers without schema support fall back to plain JSON mode.
	ResponseSchema map[string]any
	JSONOutput     bool

	Temperature float64
	MaxTokens   int
}

// Response represents a normalized LLM generation response
type Response struct {
	Text         string
	FinishReason string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
