package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"meeting-archaeologist/pkg/deepseek"
	"meeting-archaeologist/pkg/gemini"
	"meeting-archaeologist/pkg/googleai"
	"meeting-archaeologist/pkg/qwen"
)

const (
	ProviderGemini   = "gemini"
	ProviderGenAI    = "genai"
	ProviderQwen     = "qwen"
	ProviderDeepSeek = "deepseek"
)

// checkFinishReason turns a truncated completion into a token-limit failure.
// A cut-off JSON document is never worth validating.
func checkFinishReason(provider, reason string) error {
	switch strings.ToUpper(reason) {
	case "MAX_TOKENS", "LENGTH":
		return &ProviderError{
			Provider: provider,
			Kind:     ErrTokenLimit,
			Err:      fmt.Errorf("output truncated (finish reason %s)", reason),
		}
	}
	return nil
}

// wrapTransportError classifies errors that did not come back as an API answer.
func wrapTransportError(provider string, err error) error {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ProviderError{Provider: provider, Kind: ErrProviderTimeout, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return NewProviderError(provider, 0, "", err)
}

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, &gemini.Request{
		SystemInstruction: req.SystemInstruction,
		Prompt:            req.Prompt,
		Temperature:       req.Temperature,
		MaxOutputTokens:   req.MaxTokens,
		ResponseSchema:    req.ResponseSchema,
		JSONOutput:        req.JSONOutput,
	})
	if err != nil {
		var apiErr *gemini.APIError
		if errors.As(err, &apiErr) {
			return nil, NewProviderError(ProviderGemini, apiErr.StatusCode, apiErr.Status, apiErr)
		}
		return nil, wrapTransportError(ProviderGemini, err)
	}
	if err := checkFinishReason(ProviderGemini, resp.FinishReason); err != nil {
		return nil, err
	}

	out := &Response{
		Text:         resp.Text,
		FinishReason: resp.FinishReason,
		ProviderName: ProviderGemini,
		ModelName:    a.client.Model(),
	}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return out, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return ProviderGemini
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// GenAIAdapter adapts the Google GenAI SDK client.
type GenAIAdapter struct {
	client *googleai.Client
}

// NewGenAIAdapter creates a new GenAI SDK adapter
func NewGenAIAdapter(client *googleai.Client) *GenAIAdapter {
	return &GenAIAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, &googleai.Request{
		SystemInstruction: req.SystemInstruction,
		Prompt:            req.Prompt,
		Temperature:       req.Temperature,
		MaxOutputTokens:   req.MaxTokens,
		ResponseSchema:    req.ResponseSchema,
		JSONOutput:        req.JSONOutput,
	})
	if err != nil {
		var apiErr *googleai.APIError
		if errors.As(err, &apiErr) {
			return nil, NewProviderError(ProviderGenAI, apiErr.StatusCode, apiErr.Status, apiErr)
		}
		return nil, wrapTransportError(ProviderGenAI, err)
	}
	if err := checkFinishReason(ProviderGenAI, resp.FinishReason); err != nil {
		return nil, err
	}

	out := &Response{
		Text:         resp.Text,
		FinishReason: resp.FinishReason,
		ProviderName: ProviderGenAI,
		ModelName:    a.client.Model(),
	}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return out, nil
}

// Name returns provider name
func (a *GenAIAdapter) Name() string {
	return ProviderGenAI
}

// Model returns model name
func (a *GenAIAdapter) Model() string {
	return a.client.Model()
}

// QwenAdapter adapts pkg/qwen to llmprovider.Provider interface.
// Qwen has no schema-constrained decoding, so a schema degrades to JSON mode.
type QwenAdapter struct {
	client qwen.IQwen
}

// NewQwenAdapter creates a new Qwen adapter
func NewQwenAdapter(client qwen.IQwen) *QwenAdapter {
	return &QwenAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *QwenAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, &qwen.Request{
		SystemInstruction: req.SystemInstruction,
		Prompt:            req.Prompt,
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		JSONOutput:        req.JSONOutput || req.ResponseSchema != nil,
	})
	if err != nil {
		var apiErr *qwen.APIError
		if errors.As(err, &apiErr) {
			return nil, NewProviderError(ProviderQwen, apiErr.StatusCode, apiErr.Code, apiErr)
		}
		return nil, wrapTransportError(ProviderQwen, err)
	}
	if err := checkFinishReason(ProviderQwen, resp.FinishReason); err != nil {
		return nil, err
	}

	out := &Response{
		Text:         resp.Text,
		FinishReason: resp.FinishReason,
		ProviderName: ProviderQwen,
		ModelName:    a.client.Model(),
	}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return out, nil
}

// Name returns provider name
func (a *QwenAdapter) Name() string {
	return ProviderQwen
}

// Model returns model name
func (a *QwenAdapter) Model() string {
	return a.client.Model()
}

// DeepSeekAdapter adapts pkg/deepseek to llmprovider.Provider interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

// NewDeepSeekAdapter creates a new DeepSeek adapter
func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	dsReq := &deepseek.Request{
		Model:       a.client.Model(),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]deepseek.Message, 0, 2),
	}
	if req.SystemInstruction != "" {
		dsReq.Messages = append(dsReq.Messages, deepseek.Message{Role: "system", Content: req.SystemInstruction})
	}
	dsReq.Messages = append(dsReq.Messages, deepseek.Message{Role: "user", Content: req.Prompt})
	if req.JSONOutput || req.ResponseSchema != nil {
		dsReq.ResponseFormat = &deepseek.ResponseFormat{Type: "json_object"}
	}

	resp, err := a.client.GenerateContent(ctx, dsReq)
	if err != nil {
		var apiErr *deepseek.APIError
		if errors.As(err, &apiErr) {
			return nil, NewProviderError(ProviderDeepSeek, apiErr.StatusCode, apiErr.Type, apiErr)
		}
		return nil, wrapTransportError(ProviderDeepSeek, err)
	}

	out := &Response{
		ProviderName: ProviderDeepSeek,
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
	if out.ModelName == "" {
		out.ModelName = a.client.Model()
	}
	if len(resp.Choices) > 0 {
		out.Text = resp.Choices[0].Message.Content
		out.FinishReason = resp.Choices[0].FinishReason
	}
	if err := checkFinishReason(ProviderDeepSeek, out.FinishReason); err != nil {
		return nil, err
	}
	return out, nil
}

// Name returns the provider name
func (a *DeepSeekAdapter) Name() string {
	return ProviderDeepSeek
}

// Model returns the model name
func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}
