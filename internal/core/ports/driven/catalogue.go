package driven

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// PromptRepository persists the prompt catalogue.
type PromptRepository interface {
	// Load returns all prompts in insertion order.
	Load(ctx context.Context) ([]domain.Prompt, error)

	// Save replaces the stored prompts.
	Save(ctx context.Context, prompts []domain.Prompt) error
}

// CustomerRepository persists customer information.
type CustomerRepository interface {
	// Load returns all customers in insertion order.
	Load(ctx context.Context) ([]domain.Customer, error)

	// Save replaces the stored customers.
	Save(ctx context.Context, customers []domain.Customer) error
}

// SelectionRepository persists the prompt-to-selected-customers map.
type SelectionRepository interface {
	// Load returns the full map. Missing storage yields an empty map.
	Load(ctx context.Context) (domain.SelectionMap, error)

	// Save replaces the stored map.
	Save(ctx context.Context, selections domain.SelectionMap) error
}
