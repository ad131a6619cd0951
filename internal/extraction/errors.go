package extraction

import (
	"errors"
	"fmt"
)

// Input boundary errors. No generator call is made when these are returned.
var (
	ErrInputTooShort = errors.New("input text is too short")
	ErrInputTooLong  = errors.New("input text is too long")
)

// FailureCode classifies a terminal extraction failure.
type FailureCode string

const (
	CodeModelOutputInvalid FailureCode = "MODEL_OUTPUT_INVALID"
	CodeInvalidAPIKey      FailureCode = "INVALID_API_KEY"
	CodeRateLimitExceeded  FailureCode = "RATE_LIMIT_EXCEEDED"
	CodeTokenLimitExceeded FailureCode = "TOKEN_LIMIT_EXCEEDED"
	CodeProcessingFailed   FailureCode = "PROCESSING_FAILED"
)

// Failure is returned when no attempt produced a valid result.
// Violations belong to the final attempt and are empty when it failed
// without producing a candidate.
type Failure struct {
	Code       FailureCode
	Outcome    Outcome
	RetryCount int
	Attempts   int
	Violations Violations
	Cause      error
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("extraction failed (%s) after %d attempt(s): %v", f.Code, f.Attempts, f.Cause)
	}
	return fmt.Sprintf("extraction failed (%s) after %d attempt(s)", f.Code, f.Attempts)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}
