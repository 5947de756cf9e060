package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// Ensure catalogue stores implement the interfaces.
var (
	_ driven.PromptRepository    = (*PromptCatalogue)(nil)
	_ driven.CustomerRepository  = (*CustomerStore)(nil)
	_ driven.SelectionRepository = (*SelectionStore)(nil)
)

// PromptCatalogue is an in-memory implementation of driven.PromptRepository for testing.
type PromptCatalogue struct {
	mu      sync.RWMutex
	prompts []domain.Prompt
}

// NewPromptCatalogue creates a new in-memory prompt catalogue.
func NewPromptCatalogue() *PromptCatalogue {
	return &PromptCatalogue{}
}

// Load returns a copy of the stored prompts.
func (s *PromptCatalogue) Load(_ context.Context) ([]domain.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Prompt, len(s.prompts))
	copy(out, s.prompts)
	return out, nil
}

// Save replaces the stored prompts.
func (s *PromptCatalogue) Save(_ context.Context, prompts []domain.Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = make([]domain.Prompt, len(prompts))
	copy(s.prompts, prompts)
	return nil
}

// CustomerStore is an in-memory implementation of driven.CustomerRepository for testing.
type CustomerStore struct {
	mu        sync.RWMutex
	customers []domain.Customer
}

// NewCustomerStore creates a new in-memory customer store.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{}
}

// Load returns a copy of the stored customers.
func (s *CustomerStore) Load(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Customer, len(s.customers))
	copy(out, s.customers)
	return out, nil
}

// Save replaces the stored customers.
func (s *CustomerStore) Save(_ context.Context, customers []domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = make([]domain.Customer, len(customers))
	copy(s.customers, customers)
	return nil
}

// SelectionStore is an in-memory implementation of driven.SelectionRepository for testing.
type SelectionStore struct {
	mu         sync.RWMutex
	selections domain.SelectionMap
}

// NewSelectionStore creates a new in-memory selection store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{selections: make(domain.SelectionMap)}
}

// Load returns a deep copy of the stored selections.
func (s *SelectionStore) Load(_ context.Context) (domain.SelectionMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSelections(s.selections), nil
}

// Save replaces the stored selections.
func (s *SelectionStore) Save(_ context.Context, selections domain.SelectionMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections = cloneSelections(selections)
	return nil
}

func cloneSelections(in domain.SelectionMap) domain.SelectionMap {
	out := make(domain.SelectionMap, len(in))
	for prompt, sel := range in {
		out[prompt] = maps.Clone(sel)
	}
	return out
}
