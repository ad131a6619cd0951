package usecase

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"meeting-archaeologist/internal/extraction"
	"meeting-archaeologist/internal/extraction/schema"
)

// attemptState carries what the next attempt needs from the previous one.
type attemptState struct {
	attempts   int
	violations extraction.Violations
	err        error
}

// Extract runs the validated-extraction loop.
func (uc *implUseCase) Extract(ctx context.Context, input extraction.ExtractInput) (extraction.Result, error) {
	start := time.Now()

	inputLength := utf8.RuneCountInString(input.RawText)
	if inputLength < uc.cfg.MinInputLength {
		return extraction.Result{}, fmt.Errorf("%w: got %d characters, need at least %d",
			extraction.ErrInputTooShort, inputLength, uc.cfg.MinInputLength)
	}
	if uc.cfg.MaxInputLength > 0 && inputLength > uc.cfg.MaxInputLength {
		return extraction.Result{}, fmt.Errorf("%w: got %d characters, limit is %d",
			extraction.ErrInputTooLong, inputLength, uc.cfg.MaxInputLength)
	}

	total := uc.cfg.MaxRetries + 1
	uc.l.Infof(ctx, "Extract: starting input_length=%d max_attempts=%d", inputLength, total)

	var state attemptState
	for attempt := 1; attempt <= total; attempt++ {
		if err := ctx.Err(); err != nil {
			return extraction.Result{}, uc.cancelled(ctx, state, err, start)
		}

		prompt := buildPrompt(input.RawText, state.violations)
		uc.l.Infof(ctx, "Extract: attempt %d/%d", attempt, total)

		candidate, err := uc.generate(ctx, prompt)
		state.attempts = attempt
		if err != nil {
			state.violations, state.err = nil, err
			uc.metrics.Attempts.WithLabelValues(attemptGeneratorError).Inc()
			if ctx.Err() != nil {
				return extraction.Result{}, uc.cancelled(ctx, state, ctx.Err(), start)
			}
			uc.l.Errorf(ctx, "Extract: attempt %d/%d generator failed: %v", attempt, total, err)
			continue
		}

		result, violations := schema.Validate(candidate)
		if len(violations) == 0 {
			uc.metrics.Attempts.WithLabelValues(attemptSucceeded).Inc()
			return uc.succeed(ctx, result, inputLength, attempt, start), nil
		}

		state.violations, state.err = violations, nil
		uc.metrics.Attempts.WithLabelValues(attemptInvalid).Inc()
		uc.l.Warnf(ctx, "Extract: attempt %d/%d failed validation with %d violation(s):\n%s",
			attempt, total, len(violations), schema.ComposeFeedback(violations))
	}

	return extraction.Result{}, uc.exhausted(ctx, state, start)
}

// buildPrompt appends feedback only for violations of the immediately
// preceding attempt. Anything else gets the raw text.
func buildPrompt(rawText string, previous extraction.Violations) string {
	if len(previous) == 0 {
		return rawText
	}
	return rawText + "\n\n" + schema.ComposeFeedback(previous)
}

// generate bounds one generator call by the attempt timeout.
func (uc *implUseCase) generate(ctx context.Context, prompt string) (any, error) {
	if uc.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.AttemptTimeout)
		defer cancel()
	}
	return uc.gen.Generate(ctx, prompt)
}

func (uc *implUseCase) succeed(ctx context.Context, result extraction.Result, inputLength, attempt int, start time.Time) extraction.Result {
	elapsed := time.Since(start)
	result.Meta = map[string]any{
		extraction.MetaInputLength:      inputLength,
		extraction.MetaRetryCount:       attempt - 1,
		extraction.MetaModel:            uc.gen.Model(),
		extraction.MetaProcessingTimeMs: elapsed.Milliseconds(),
	}

	uc.metrics.observe(extraction.OutcomeSucceeded, "", attempt-1, elapsed)
	uc.l.Infof(ctx, "Extract: succeeded decisions=%d tasks=%d noise=%d retry_count=%d processing_time_ms=%d",
		len(result.Decisions), len(result.Tasks), len(result.Noise), attempt-1, elapsed.Milliseconds())
	return result
}

func (uc *implUseCase) exhausted(ctx context.Context, state attemptState, start time.Time) *extraction.Failure {
	failure := &extraction.Failure{
		Attempts:   state.attempts,
		RetryCount: retryCount(state.attempts),
	}
	if state.err != nil {
		failure.Outcome = extraction.OutcomeExhaustedError
		failure.Code = classify(state.err)
		failure.Cause = state.err
	} else {
		failure.Outcome = extraction.OutcomeExhaustedValidation
		failure.Code = extraction.CodeModelOutputInvalid
		failure.Violations = state.violations
	}

	uc.metrics.observe(failure.Outcome, failure.Code, failure.RetryCount, time.Since(start))
	uc.l.Errorf(ctx, "Extract: failed code=%s outcome=%s attempts=%d: %v",
		failure.Code, failure.Outcome, failure.Attempts, failure)
	return failure
}

// cancelled stops the loop once the caller has gone away.
func (uc *implUseCase) cancelled(ctx context.Context, state attemptState, cause error, start time.Time) *extraction.Failure {
	failure := &extraction.Failure{
		Code:       extraction.CodeProcessingFailed,
		Outcome:    extraction.OutcomeExhaustedError,
		Attempts:   state.attempts,
		RetryCount: retryCount(state.attempts),
		Cause:      cause,
	}

	uc.metrics.observe(failure.Outcome, failure.Code, failure.RetryCount, time.Since(start))
	uc.l.Warnf(ctx, "Extract: stopped after %d attempt(s): %v", state.attempts, cause)
	return failure
}

func retryCount(attempts int) int {
	if attempts < 1 {
		return 0
	}
	return attempts - 1
}
