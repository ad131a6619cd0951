package googleai

import (
	"fmt"
	"net/http"
)

const (
	// DefaultModel is the default model for the SDK provider
	DefaultModel = "gemini-2.0-flash"

	BackendGeminiAPI = "gemini"
	BackendVertexAI  = "vertex"
)

// Config holds configuration for the Google GenAI SDK client.
// Vertex AI uses Project/Location and application default credentials;
// the Gemini API backend uses APIKey.
type Config struct {
	APIKey     string
	Model      string
	Backend    string
	Project    string
	Location   string
	BaseURL    string
	HTTPClient *http.Client
}

// Validate validates the configuration and fills defaults
func (c *Config) Validate() error {
	if c.Backend == "" {
		c.Backend = BackendGeminiAPI
	}
	switch c.Backend {
	case BackendGeminiAPI:
		if c.APIKey == "" {
			return fmt.Errorf("googleai: APIKey is required for the gemini backend")
		}
	case BackendVertexAI:
		if c.Project == "" || c.Location == "" {
			return fmt.Errorf("googleai: Project and Location are required for the vertex backend")
		}
	default:
		return fmt.Errorf("googleai: unknown backend %q", c.Backend)
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	return nil
}

// Request represents a single-turn generation request
type Request struct {
	SystemInstruction string
	Prompt            string
	Temperature       float64
	MaxOutputTokens   int
	ResponseSchema    map[string]any
	JSONOutput        bool
}

// Response represents a generation response
type Response struct {
	Text         string
	FinishReason string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// APIError carries the HTTP status and provider status of a failed call.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("googleai: API error %d %s: %s", e.StatusCode, e.Status, e.Message)
}
