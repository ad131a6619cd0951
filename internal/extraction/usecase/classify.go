package usecase

import (
	"errors"

	"meeting-archaeologist/internal/extraction"
	"meeting-archaeologist/pkg/llmprovider"
)

// classify maps the final generator error to a failure code. Provider errors
// carry their kind already; anything else gets one pass of the message
// heuristic before defaulting to PROCESSING_FAILED. MODEL_OUTPUT_INVALID is
// never produced here: it belongs to exhausted validation only, so an
// undecodable reply on the last attempt is a processing failure.
func classify(err error) extraction.FailureCode {
	var pe *llmprovider.ProviderError
	if !errors.As(err, &pe) {
		if kind := llmprovider.InferKind(0, "", err.Error()); kind != nil {
			err = kind
		}
	}

	switch {
	case errors.Is(err, llmprovider.ErrUnauthorized):
		return extraction.CodeInvalidAPIKey
	case errors.Is(err, llmprovider.ErrProviderRateLimited):
		return extraction.CodeRateLimitExceeded
	case errors.Is(err, llmprovider.ErrTokenLimit):
		return extraction.CodeTokenLimitExceeded
	default:
		return extraction.CodeProcessingFailed
	}
}
