package qwen

import "context"

// IQwen defines the interface for the Qwen (DashScope compatible-mode) client.
// Implementations are safe for concurrent use and issue exactly one HTTP call
// per GenerateContent.
type IQwen interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}

// New creates a new Qwen client with the given configuration
func New(cfg Config) (IQwen, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newQwenImpl(cfg), nil
}
