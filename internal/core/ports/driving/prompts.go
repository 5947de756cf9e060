package driving

import (
	"context"

	"github.com/custodia-labs/curata/internal/core/domain"
)

// PromptService manages the prompt catalogue, customers and selections.
type PromptService interface {
	// ListPrompts returns all prompts in insertion order.
	ListPrompts(ctx context.Context) ([]domain.Prompt, error)

	// GetPrompt returns the prompt with this exact name.
	GetPrompt(ctx context.Context, name string) (*domain.Prompt, error)

	// SearchPrompts returns prompts whose name contains query, case-insensitively.
	SearchPrompts(ctx context.Context, query string) ([]domain.Prompt, error)

	// CreatePrompt adds a prompt.
	CreatePrompt(ctx context.Context, prompt domain.Prompt) error

	// UpdatePrompt replaces the details of an existing prompt.
	UpdatePrompt(ctx context.Context, name, details string) error

	// DeletePrompt removes every prompt with this name.
	DeletePrompt(ctx context.Context, name string) error

	// ListCustomers returns all customers in insertion order.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// GetCustomer returns the customer with this exact name.
	GetCustomer(ctx context.Context, name string) (*domain.Customer, error)

	// SearchCustomers returns customers whose name contains query, case-insensitively.
	SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error)

	// CreateCustomer adds a customer.
	CreateCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer replaces the details of an existing customer.
	UpdateCustomer(ctx context.Context, name, details string) error

	// DeleteCustomer removes every customer with this name.
	DeleteCustomer(ctx context.Context, name string) error

	// Selection returns the customers selected for a prompt.
	Selection(ctx context.Context, promptName string) (domain.CustomerSelection, error)

	// SetSelection replaces the customers selected for a prompt.
	SetSelection(ctx context.Context, promptName string, selection domain.CustomerSelection) error

	// BuildPrompt returns the prompt details prefixed with selected customer context.
	BuildPrompt(ctx context.Context, promptName string) (string, error)
}
