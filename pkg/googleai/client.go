package googleai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Client wraps the Google GenAI SDK for single-turn structured generation.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a GenAI SDK client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientCfg := &genai.ClientConfig{
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	if cfg.Backend == BackendVertexAI {
		clientCfg.Backend = genai.BackendVertexAI
		clientCfg.Project = cfg.Project
		clientCfg.Location = cfg.Location
	} else {
		clientCfg.Backend = genai.BackendGeminiAPI
		clientCfg.APIKey = cfg.APIKey
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("googleai: failed to create GenAI client: %w", err)
	}

	return &Client{client: client, model: cfg.Model}, nil
}

// Model returns the model being used
func (c *Client) Model() string {
	return c.model
}

// GenerateContent performs one generateContent call.
func (c *Client) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	genCfg, err := buildConfig(req)
	if err != nil {
		return nil, err
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), genCfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, &APIError{StatusCode: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
		}
		return nil, fmt.Errorf("googleai: generate failed: %w", err)
	}

	resp := &Response{Text: result.Text(), Usage: &Usage{}}
	if len(result.Candidates) > 0 {
		resp.FinishReason = string(result.Candidates[0].FinishReason)
	}
	if result.UsageMetadata != nil {
		resp.Usage = &Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}

func buildConfig(req *Request) (*genai.GenerateContentConfig, error) {
	genCfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.Temperature > 0 {
		genCfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxOutputTokens > 0 {
		genCfg.MaxOutputTokens = int32(req.MaxOutputTokens)
	}
	if req.ResponseSchema != nil {
		schema, err := toSchema(req.ResponseSchema)
		if err != nil {
			return nil, err
		}
		genCfg.ResponseMIMEType = "application/json"
		genCfg.ResponseSchema = schema
	} else if req.JSONOutput {
		genCfg.ResponseMIMEType = "application/json"
	}
	return genCfg, nil
}

// toSchema converts an OpenAPI-subset schema map into the SDK schema type.
// Both share the same JSON field names.
func toSchema(m map[string]any) (*genai.Schema, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("googleai: failed to encode schema: %w", err)
	}
	var schema genai.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("googleai: failed to decode schema: %w", err)
	}
	return &schema, nil
}
