package gemini

import "context"

// IGemini defines the interface for the Gemini REST client.
// Implementations are safe for concurrent use and issue exactly one HTTP call
// per GenerateContent.
type IGemini interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}

// New creates a new Gemini client with the given configuration
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
