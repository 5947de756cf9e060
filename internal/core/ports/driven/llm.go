package driven

import "context"

// LLMService provides model completions for post generation.
// This is an optional service - when nil, generation is disabled but
// curation, media binding and export keep working.
//
// Implementations return *domain.ProviderError for provider failures so
// callers can distinguish rate limits, auth, connectivity and other errors.
type LLMService interface {
	// Complete sends one user prompt with a system prompt and returns the raw reply.
	Complete(ctx context.Context, system, prompt string, opts CompleteOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CompleteOptions configures a completion.
type CompleteOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
