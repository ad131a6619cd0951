package llmprovider

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAllProvidersFailed indicates all providers failed to generate content
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrInvalidRequest indicates the request is malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderTimeout indicates a provider request timed out
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderRateLimited indicates rate limit or quota exceeded
	ErrProviderRateLimited = errors.New("provider rate limited")

	// ErrUnauthorized indicates the provider rejected the credentials
	ErrUnauthorized = errors.New("provider rejected credentials")

	// ErrTokenLimit indicates the prompt or the completion hit a token limit
	ErrTokenLimit = errors.New("token limit exceeded")

	// ErrMalformedOutput indicates the model answered with something that is not decodable
	ErrMalformedOutput = errors.New("malformed model output")
)

// ProviderError wraps provider-specific errors with a failure kind.
// errors.Is matches both the kind sentinel and the underlying cause.
type ProviderError struct {
	Provider   string
	StatusCode int
	Kind       error
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewProviderError builds a ProviderError and infers its kind from the HTTP
// status, the provider status string and the message.
func NewProviderError(provider string, statusCode int, status string, err error) *ProviderError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &ProviderError{
		Provider:   provider,
		StatusCode: statusCode,
		Kind:       InferKind(statusCode, status, msg),
		Err:        err,
	}
}

// InferKind maps a provider failure to one of the kind sentinels, or nil when
// nothing specific is known. Status codes win over provider status strings,
// which win over the message text.
func InferKind(statusCode int, status, message string) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrProviderRateLimited
	case http.StatusRequestEntityTooLarge:
		return ErrTokenLimit
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrProviderTimeout
	}

	switch strings.ToUpper(status) {
	case "UNAUTHENTICATED", "PERMISSION_DENIED":
		return ErrUnauthorized
	case "RESOURCE_EXHAUSTED":
		return ErrProviderRateLimited
	case "DEADLINE_EXCEEDED":
		return ErrProviderTimeout
	}

	return kindFromMessage(message)
}

// kindFromMessage is the last-resort classifier. Token limits are matched on
// token-specific phrases only, so a message mentioning an unrelated "limit"
// is not taken for a token overflow.
func kindFromMessage(message string) error {
	m := strings.ToLower(message)
	switch {
	case containsAny(m, "api key not valid", "invalid api key", "api_key_invalid", "incorrect api key", "invalid_api_key"):
		return ErrUnauthorized
	case containsAny(m, "rate limit", "rate_limit", "quota", "too many requests"):
		return ErrProviderRateLimited
	case containsAny(m, "maximum context length", "context_length_exceeded", "too many tokens",
		"token count exceeds", "exceeds the maximum number of tokens", "max_tokens"):
		return ErrTokenLimit
	}
	return nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
