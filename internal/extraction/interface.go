package extraction

import "context"

// UseCase defines the business logic interface for the extraction domain.
type UseCase interface {
	// Extract turns raw meeting text into a validated Result, retrying with
	// corrective feedback until the contract holds or the budget is spent.
	Extract(ctx context.Context, input ExtractInput) (Result, error)
}

// Generator produces a candidate Result from a prompt. The candidate is a
// decoded JSON value that has not been validated.
type Generator interface {
	Generate(ctx context.Context, prompt string) (any, error)
	Model() string
}
