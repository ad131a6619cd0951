package response

// Resp is the standard JSON envelope used by system endpoints.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// ErrorResp is the flat error body returned by API endpoints.
// Violations is only filled outside production.
type ErrorResp struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryCount int    `json:"retry_count"`
	Violations any    `json:"violations,omitempty"`
}
