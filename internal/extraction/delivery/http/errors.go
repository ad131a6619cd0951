package http

import (
	"context"
	"errors"
	"net/http"

	"meeting-archaeologist/internal/extraction"
	"meeting-archaeologist/pkg/llmprovider"
	"meeting-archaeologist/pkg/response"
)

const codeInvalidInput = "INVALID_INPUT"

var (
	errInvalidBody       = errors.New("request body must be a JSON object with a raw_text string")
	errUnsupportedFormat = errors.New("format must be json or markdown")
)

var failureMessages = map[extraction.FailureCode]string{
	extraction.CodeModelOutputInvalid: "The agent failed to produce valid structured output.",
	extraction.CodeInvalidAPIKey:      "The language model rejected the configured API key.",
	extraction.CodeRateLimitExceeded:  "The language model rate limit was exceeded. Try again later.",
	extraction.CodeTokenLimitExceeded: "The input is too long for the language model.",
	extraction.CodeProcessingFailed:   "An unexpected error occurred during processing.",
}

var failureStatus = map[extraction.FailureCode]int{
	extraction.CodeModelOutputInvalid: http.StatusInternalServerError,
	extraction.CodeInvalidAPIKey:      http.StatusInternalServerError,
	extraction.CodeRateLimitExceeded:  http.StatusTooManyRequests,
	extraction.CodeTokenLimitExceeded: http.StatusRequestEntityTooLarge,
	extraction.CodeProcessingFailed:   http.StatusInternalServerError,
}

// mapError translates request and use-case errors into a status and body.
func (h *handler) mapError(err error) (int, response.ErrorResp) {
	switch {
	case errors.Is(err, errInvalidBody),
		errors.Is(err, errUnsupportedFormat),
		errors.Is(err, extraction.ErrInputTooShort),
		errors.Is(err, extraction.ErrInputTooLong):
		return http.StatusUnprocessableEntity, response.ErrorResp{
			Error:   codeInvalidInput,
			Message: inputMessage(err),
		}
	}

	var f *extraction.Failure
	if !errors.As(err, &f) {
		return http.StatusInternalServerError, response.ErrorResp{
			Error:   string(extraction.CodeProcessingFailed),
			Message: failureMessages[extraction.CodeProcessingFailed],
		}
	}

	status, ok := failureStatus[f.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if f.Code == extraction.CodeProcessingFailed && isTimeout(err) {
		status = http.StatusGatewayTimeout
	}

	message, ok := failureMessages[f.Code]
	if !ok {
		message = response.DefaultErrorMessage
	}

	body := response.ErrorResp{
		Error:      string(f.Code),
		Message:    message,
		RetryCount: f.RetryCount,
	}
	if h.exposeViolations {
		if vs := newViolationsResp(f.Violations); vs != nil {
			body.Violations = vs
		}
	}
	return status, body
}

func inputMessage(err error) string {
	switch {
	case errors.Is(err, extraction.ErrInputTooShort):
		return "Input text is too short to extract anything meaningful."
	case errors.Is(err, extraction.ErrInputTooLong):
		return "Input text exceeds the maximum allowed length."
	case errors.Is(err, errUnsupportedFormat):
		return errUnsupportedFormat.Error()
	default:
		return errInvalidBody.Error()
	}
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, llmprovider.ErrProviderTimeout)
}
