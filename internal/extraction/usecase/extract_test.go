package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"meeting-archaeologist/internal/extraction"
	"meeting-archaeologist/internal/extraction/schema"
	"meeting-archaeologist/pkg/llmprovider"
	pkgLog "meeting-archaeologist/pkg/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const rawText = "Alice: let's move the standup to 10am. Bob: agreed, and someone should fix the flaky login test."

// step scripts one generator call.
type step struct {
	json   string
	err    error
	block  bool
	before func()
}

type scriptedGenerator struct {
	mu      sync.Mutex
	steps   []step
	prompts []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (any, error) {
	g.mu.Lock()
	idx := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	if idx >= len(g.steps) {
		return nil, errors.New("script exhausted")
	}
	s := g.steps[idx]
	if s.before != nil {
		s.before()
	}
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}

	dec := json.NewDecoder(strings.NewReader(s.json))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		panic(err)
	}
	return v, nil
}

func (g *scriptedGenerator) Model() string { return "gemini-test" }

func (g *scriptedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

const validJSON = `{
	"decisions": [{"statement": "Standup moves to 10am", "confidence": 0.95}],
	"tasks": [{"title": "Fix flaky login test", "description": "Stabilise the e2e login test", "priority": "P2",
		"complexity": 2, "domain": "qa", "owner_hint": "QA team", "confidence": 0.7, "reasoning": null}],
	"noise": [],
	"meta": {"model": "hallucinated", "retry_count": 99}
}`

func invalidPriorityJSON(priority string) string {
	return `{"tasks": [{"title": "Fix flaky login test", "description": "d", "priority": "` + priority + `",
		"complexity": 2, "domain": "qa", "confidence": 0.7}]}`
}

const invalidDomainJSON = `{"tasks": [{"title": "Fix flaky login test", "description": "d", "priority": "P1",
	"complexity": 2, "domain": "marketing", "confidence": 0.7}]}`

func violationsOf(t *testing.T, raw string) extraction.Violations {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	_, violations := schema.Validate(v)
	require.NotEmpty(t, violations)
	return violations
}

func newUseCase(gen extraction.Generator, maxRetries int) extraction.UseCase {
	return New(pkgLog.NewNop(), gen, Config{
		MaxRetries:     maxRetries,
		AttemptTimeout: time.Second,
		MinInputLength: 20,
		MaxInputLength: 1000,
	})
}

func asFailure(t *testing.T, err error) *extraction.Failure {
	t.Helper()
	var failure *extraction.Failure
	require.ErrorAs(t, err, &failure)
	return failure
}

func TestExtract_FirstAttemptSuccess(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{{json: validJSON}}}

	res, err := newUseCase(gen, 2).Extract(context.Background(), extraction.ExtractInput{RawText: rawText})
	require.NoError(t, err)

	assert.Equal(t, []string{rawText}, gen.prompts)
	assert.Len(t, res.Decisions, 1)
	assert.Len(t, res.Tasks, 1)
	assert.NotNil(t, res.Noise)

	assert.Equal(t, 0, res.Meta[extraction.MetaRetryCount])
	assert.Equal(t, "gemini-test", res.Meta[extraction.MetaModel])
	assert.Equal(t, len([]rune(rawText)), res.Meta[extraction.MetaInputLength])
	assert.Contains(t, res.Meta, extraction.MetaProcessingTimeMs)
	assert.Len(t, res.Meta, 4)
}

func TestExtract_RetriesWithFeedbackFromPreviousAttemptOnly(t *testing.T) {
	first := invalidPriorityJSON("urgent")
	second := invalidDomainJSON
	gen := &scriptedGenerator{steps: []step{{json: first}, {json: second}, {json: validJSON}}}

	res, err := newUseCase(gen, 2).Extract(context.Background(), extraction.ExtractInput{RawText: rawText})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Meta[extraction.MetaRetryCount])

	require.Len(t, gen.prompts, 3)
	assert.Equal(t, rawText, gen.prompts[0])
	assert.Equal(t, rawText+"\n\n"+schema.ComposeFeedback(violationsOf(t, first)), gen.prompts[1])
	assert.Equal(t, rawText+"\n\n"+schema.ComposeFeedback(violationsOf(t, second)), gen.prompts[2])
	assert.NotContains(t, gen.prompts[2], "tasks[0].priority")
}

func TestExtract_InvalidPriorityTwiceThenValid(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{
		{json: invalidPriorityJSON("HIGH")},
		{json: invalidPriorityJSON("HIGH")},
		{json: validJSON},
	}}

	res, err := newUseCase(gen, 2).Extract(context.Background(), extraction.ExtractInput{RawText: rawText})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Meta[extraction.MetaRetryCount])
	assert.Equal(t, 3, gen.calls())
}

func TestExtract_ExhaustedValidation(t *testing.T) {
	before := testutil.ToFloat64(NewMetrics().Requests.WithLabelValues(
		string(extraction.OutcomeExhaustedValidation), string(extraction.CodeModelOutputInvalid)))

	last := invalidDomainJSON
	gen := &scriptedGenerator{steps: []step{
		{json: invalidPriorityJSON("HIGH")},
		{json: invalidPriorityJSON("low")},
		{json: last},
	}}

	_, err := newUseCase(gen, 2).Extract(context.Background(), extraction.ExtractInput{RawText: rawText})
	failure := asFailure(t, err)

	assert.Equal(t, extraction.CodeModelOutputInvalid, failure.Code)
	assert.Equal(t, extraction.OutcomeExhaustedValidation, failure.Outcome)
	assert.Equal(t, 3, failure.Attempts)
	assert.Equal(t, 2, failure.RetryCount)
	assert.Equal(t, violationsOf(t, last), failure.Violations)
	assert.Equal(t, 3, gen.calls(), "no attempt beyond the budget")

	after := testutil.ToFloat64(NewMetrics().Requests.WithLabelValues(
		string(extraction.OutcomeExhaustedValidation), string(extraction.CodeModelOutputInvalid)))
	assert.Equal(t, before+1, after)
}

func TestExtract_ZeroBudget(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{{json: invalidDomainJSON}, {json: validJSON}}}

	_, err := newUseCase(gen, 0).Extract(context.Background(), extraction.ExtractInput{RawText: rawText})
	failure := asFailure(t, err)

	assert.Equal(t, 1, gen.calls())
	assert.Equal(t, 0, failure.RetryCount)
	assert.Equal(t, extraction.CodeModelOutputInvalid, failure.Code)
}

func TestExtract_GeneratorFailures(t *testing.T) {
	providerErr := func(status int, kind error) error {
		return &llmprovider.ProviderError{Provider: "gemini", StatusCode: status, Kind: kind, Err: errors.New("upstream")}
	}

	tests := []struct {
		name string
		err  error
		want extraction.FailureCode
	}{
		{name: "unauthorized", err: providerErr(401, llmprovider.ErrUnauthorized), want: extraction.CodeInvalidAPIKey},
		{name: "rate limited", err: providerErr(429, llmprovider.ErrProviderRateLimited), want: extraction.CodeRateLimitExceeded},
		{name: "token limit", err: providerErr(0, llmprovider.ErrTokenLimit), want: extraction.CodeTokenLimitExceeded},
		{name: "malformed", err: providerErr(0, llmprovider.ErrMalformedOutput), want: extraction.CodeProcessingFailed},
		{name: "unknown", err: providerErr(500, nil), want: extraction.CodeProcessingFailed},
		{name: "wrapped by fallback", err: errors.Join(llmprovider.ErrAllProvidersFailed, providerErr(429, llmprovider.ErrProviderRateLimited)),
			want: extraction.CodeRateLimitExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &scriptedGenerator{steps: []step{{err: tt.err}, {err: tt.err}, {err: tt.err}}}

			_, err := newUseCase(gen, 2).Extract(context.Background(), extraction.ExtractInput{RawText: rawText})
			failure := asFailure(t, err)

			assert.Equal(t, tt.want, failure.Code)
			assert.Equal(t, extraction.OutcomeExhaustedError, failure.Outcome)
			assert.Empty(t, failure.Violations)
			assert.ErrorIs(t, failure, tt.err)
			assert.Equal(t, 3, gen.calls())
			assert.Equal(t, []string{rawText, rawText, rawText}, gen.prompts)
		})
	}
}

func TestExtract_UndecodableOutputIsNotValidationFailure(t *testing.T) {
	undecodable := &llmprovider.ProviderError{Provider: "gemini", Kind: llmprovider.ErrMalformedOutput, Err: errors.New("invalid character 'S'")}
	gen := &scriptedGenerator{steps: []step{{err: undecodable}, {err: undecodable}, {err: undecodable}}}

	_, err := newUseCase(gen, 2).Extract(context.Background(), extraction.ExtractInput{RawText: rawText})
	failure := asFailure(t, err)

	assert.Equal(t, extraction.CodeProcessingFailed, failure.Code)
	assert.Equal(t, extraction.OutcomeExhaustedError, failure.Outcome)
	assert.Empty(t, failure.Violations)
	assert.Equal(t, 2, failure.RetryCount)
}

func TestExtract_GeneratorFailureResetsFeedback(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{
		{json: invalidDomainJSON},
		{err: errors.New("connection reset")},
		{json: validJSON},
	}}

	res, err := newUseCase(gen, 2).Extract(context.Background(), extraction.ExtractInput{RawText: rawText})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Meta[extraction.MetaRetryCount])

	require.Len(t, gen.prompts, 3)
	assert.Contains(t, gen.prompts[1], schema.FeedbackHeader)
	assert.Equal(t, rawText, gen.prompts[2])
}

func TestExtract_FinalAttemptDecidesOutcome(t *testing.T) {
	rateLimited := &llmprovider.ProviderError{Provider: "gemini", StatusCode: 429, Kind: llmprovider.ErrProviderRateLimited, Err: errors.New("quota")}
	gen := &scriptedGenerator{steps: []step{{json: invalidDomainJSON}, {err: rateLimited}}}

	_, err := newUseCase(gen, 1).Extract(context.Background(), extraction.ExtractInput{RawText: rawText})
	failure := asFailure(t, err)

	assert.Equal(t, extraction.CodeRateLimitExceeded, failure.Code)
	assert.Empty(t, failure.Violations)
	assert.Equal(t, 1, failure.RetryCount)
}

func TestExtract_InputBoundary(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{name: "19 characters", text: strings.Repeat("a", 19), wantErr: extraction.ErrInputTooShort},
		{name: "20 characters", text: strings.Repeat("a", 20)},
		{name: "20 multibyte characters", text: strings.Repeat("é", 20)},
		{name: "empty", text: "", wantErr: extraction.ErrInputTooShort},
		{name: "over limit", text: strings.Repeat("a", 1001), wantErr: extraction.ErrInputTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &scriptedGenerator{steps: []step{{json: validJSON}}}

			res, err := newUseCase(gen, 2).Extract(context.Background(), extraction.ExtractInput{RawText: tt.text})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, gen.calls(), "no generator call for rejected input")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 20, res.Meta[extraction.MetaInputLength])
		})
	}
}

func TestExtract_ParentCancellationStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gen := &scriptedGenerator{steps: []step{
		{block: true, before: cancel},
		{json: validJSON},
	}}

	_, err := newUseCase(gen, 2).Extract(ctx, extraction.ExtractInput{RawText: rawText})
	failure := asFailure(t, err)

	assert.Equal(t, extraction.CodeProcessingFailed, failure.Code)
	assert.ErrorIs(t, failure, context.Canceled)
	assert.Equal(t, 1, failure.Attempts)
	assert.Equal(t, 1, gen.calls(), "no attempt after cancellation")
}

func TestExtract_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &scriptedGenerator{steps: []step{{json: validJSON}}}
	_, err := newUseCase(gen, 2).Extract(ctx, extraction.ExtractInput{RawText: rawText})

	failure := asFailure(t, err)
	assert.Equal(t, extraction.CodeProcessingFailed, failure.Code)
	assert.Equal(t, 0, gen.calls())
}

func TestExtract_AttemptTimeoutRetriesWithRawPrompt(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{{block: true}, {json: validJSON}}}
	uc := New(pkgLog.NewNop(), gen, Config{MaxRetries: 1, AttemptTimeout: 20 * time.Millisecond, MinInputLength: 20})

	res, err := uc.Extract(context.Background(), extraction.ExtractInput{RawText: rawText})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Meta[extraction.MetaRetryCount])
	assert.Equal(t, []string{rawText, rawText}, gen.prompts)
}

func TestExtract_AttemptTimeoutExhausted(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{{block: true}}}
	uc := New(pkgLog.NewNop(), gen, Config{AttemptTimeout: 10 * time.Millisecond, MinInputLength: 20})

	_, err := uc.Extract(context.Background(), extraction.ExtractInput{RawText: rawText})
	failure := asFailure(t, err)
	assert.Equal(t, extraction.CodeProcessingFailed, failure.Code)
	assert.ErrorIs(t, failure, context.DeadlineExceeded)
}

type constGenerator struct{}

func (constGenerator) Generate(ctx context.Context, prompt string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(validJSON))
	dec.UseNumber()
	var v any
	err := dec.Decode(&v)
	return v, err
}

func (constGenerator) Model() string { return "const" }

func TestExtract_ConcurrentLoopsAreIndependent(t *testing.T) {
	uc := newUseCase(constGenerator{}, 2)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := rawText + strings.Repeat("!", i)
			res, err := uc.Extract(context.Background(), extraction.ExtractInput{RawText: text})
			if err != nil {
				errs <- err
				return
			}
			if res.Meta[extraction.MetaInputLength] != len([]rune(text)) {
				errs <- errors.New("meta leaked between loops")
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want extraction.FailureCode
	}{
		{err: errors.New("API key not valid. Please pass a valid API key."), want: extraction.CodeInvalidAPIKey},
		{err: errors.New("too many requests"), want: extraction.CodeRateLimitExceeded},
		{err: errors.New("maximum context length exceeded"), want: extraction.CodeTokenLimitExceeded},
		{err: errors.New("token refresh failed: retry limit reached"), want: extraction.CodeProcessingFailed},
		{err: errors.New("boom"), want: extraction.CodeProcessingFailed},
		{err: &llmprovider.ProviderError{Provider: "x", Kind: nil, Err: errors.New("quota exceeded")}, want: extraction.CodeProcessingFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.err), tt.err.Error())
	}
}
