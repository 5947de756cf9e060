package driven

import "context"

// PromptLog is an append-only record of prompts sent to the model.
// Each entry is one line: "<timestamp> - PROMPT: <text>".
type PromptLog interface {
	// Append writes one entry.
	Append(ctx context.Context, prompt string) error

	// Read returns every line in order. A missing log yields an empty slice.
	Read(ctx context.Context) ([]string, error)
}
