package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

// Ensure PromptService implements the interface.
var _ driving.PromptService = (*PromptService)(nil)

// PromptService manages the prompt catalogue, customers and per-prompt selections.
type PromptService struct {
	prompts    driven.PromptRepository
	customers  driven.CustomerRepository
	selections driven.SelectionRepository

	mu sync.Mutex
}

// NewPromptService creates a new prompt service.
func NewPromptService(
	prompts driven.PromptRepository,
	customers driven.CustomerRepository,
	selections driven.SelectionRepository,
) *PromptService {
	return &PromptService{
		prompts:    prompts,
		customers:  customers,
		selections: selections,
	}
}

// ListPrompts returns all prompts in insertion order.
func (s *PromptService) ListPrompts(ctx context.Context) ([]domain.Prompt, error) {
	prompts, err := s.prompts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load prompts: %w", domain.ErrPersistence, err)
	}
	return prompts, nil
}

// GetPrompt returns the prompt with this exact name.
func (s *PromptService) GetPrompt(ctx context.Context, name string) (*domain.Prompt, error) {
	prompts, err := s.ListPrompts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range prompts {
		if prompts[i].Name == name {
			return &prompts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: prompt %q", domain.ErrNotFound, name)
}

// SearchPrompts returns prompts whose name contains query, case-insensitively.
func (s *PromptService) SearchPrompts(ctx context.Context, query string) ([]domain.Prompt, error) {
	prompts, err := s.ListPrompts(ctx)
	if err != nil {
		return nil, err
	}
	return filterByName(prompts, query, func(p domain.Prompt) string { return p.Name }), nil
}

// CreatePrompt adds a prompt. Names must be unique.
func (s *PromptService) CreatePrompt(ctx context.Context, prompt domain.Prompt) error {
	prompt.Name = strings.TrimSpace(prompt.Name)
	if prompt.Name == "" {
		return fmt.Errorf("%w: prompt name is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prompts, err := s.ListPrompts(ctx)
	if err != nil {
		return err
	}
	for _, p := range prompts {
		if p.Name == prompt.Name {
			return fmt.Errorf("%w: prompt %q", domain.ErrAlreadyExists, prompt.Name)
		}
	}
	return s.savePrompts(ctx, append(prompts, prompt))
}

// UpdatePrompt replaces the details of an existing prompt.
func (s *PromptService) UpdatePrompt(ctx context.Context, name, details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prompts, err := s.ListPrompts(ctx)
	if err != nil {
		return err
	}
	for i := range prompts {
		if prompts[i].Name == name {
			prompts[i].Details = details
			return s.savePrompts(ctx, prompts)
		}
	}
	return fmt.Errorf("%w: prompt %q", domain.ErrNotFound, name)
}

// DeletePrompt removes every prompt with this name and its customer selection.
func (s *PromptService) DeletePrompt(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prompts, err := s.ListPrompts(ctx)
	if err != nil {
		return err
	}
	kept := prompts[:0]
	for _, p := range prompts {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(prompts) {
		return fmt.Errorf("%w: prompt %q", domain.ErrNotFound, name)
	}
	if err := s.savePrompts(ctx, kept); err != nil {
		return err
	}

	selections, err := s.loadSelections(ctx)
	if err != nil {
		return err
	}
	if _, ok := selections[name]; !ok {
		return nil
	}
	delete(selections, name)
	return s.saveSelections(ctx, selections)
}

// ListCustomers returns all customers in insertion order.
func (s *PromptService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customers.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load customers: %w", domain.ErrPersistence, err)
	}
	return customers, nil
}

// GetCustomer returns the customer with this exact name.
func (s *PromptService) GetCustomer(ctx context.Context, name string) (*domain.Customer, error) {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].Name == name {
			return &customers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: customer %q", domain.ErrNotFound, name)
}

// SearchCustomers returns customers whose name contains query, case-insensitively.
func (s *PromptService) SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return filterByName(customers, query, func(c domain.Customer) string { return c.Name }), nil
}

// CreateCustomer adds a customer. Names must be unique.
func (s *PromptService) CreateCustomer(ctx context.Context, customer domain.Customer) error {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return fmt.Errorf("%w: customer name is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return err
	}
	for _, c := range customers {
		if c.Name == customer.Name {
			return fmt.Errorf("%w: customer %q", domain.ErrAlreadyExists, customer.Name)
		}
	}
	return s.saveCustomers(ctx, append(customers, customer))
}

// UpdateCustomer replaces the details of an existing customer.
func (s *PromptService) UpdateCustomer(ctx context.Context, name, details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].Name == name {
			customers[i].Details = details
			return s.saveCustomers(ctx, customers)
		}
	}
	return fmt.Errorf("%w: customer %q", domain.ErrNotFound, name)
}

// DeleteCustomer removes every customer with this name from the list and from all selections.
func (s *PromptService) DeleteCustomer(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return err
	}
	kept := customers[:0]
	for _, c := range customers {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(customers) {
		return fmt.Errorf("%w: customer %q", domain.ErrNotFound, name)
	}
	if err := s.saveCustomers(ctx, kept); err != nil {
		return err
	}

	selections, err := s.loadSelections(ctx)
	if err != nil {
		return err
	}
	changed := false
	for _, sel := range selections {
		if _, ok := sel[name]; ok {
			delete(sel, name)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.saveSelections(ctx, selections)
}

// Selection returns the customers selected for a prompt.
func (s *PromptService) Selection(ctx context.Context, promptName string) (domain.CustomerSelection, error) {
	selections, err := s.loadSelections(ctx)
	if err != nil {
		return nil, err
	}
	if sel, ok := selections[promptName]; ok {
		return sel, nil
	}
	return domain.CustomerSelection{}, nil
}

// SetSelection replaces the customers selected for a prompt.
func (s *PromptService) SetSelection(ctx context.Context, promptName string, selection domain.CustomerSelection) error {
	if _, err := s.GetPrompt(ctx, promptName); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	selections, err := s.loadSelections(ctx)
	if err != nil {
		return err
	}
	if selection == nil {
		selection = domain.CustomerSelection{}
	}
	selections[promptName] = selection
	return s.saveSelections(ctx, selections)
}

// BuildPrompt prefixes the prompt details with one "name: details" line per
// selected customer, ordered by name, followed by a blank line.
// Selected names that no longer match a customer are skipped.
func (s *PromptService) BuildPrompt(ctx context.Context, promptName string) (string, error) {
	prompt, err := s.GetPrompt(ctx, promptName)
	if err != nil {
		return "", err
	}
	selection, err := s.Selection(ctx, promptName)
	if err != nil {
		return "", err
	}
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return "", err
	}

	details := make(map[string]string, len(customers))
	for _, c := range customers {
		if _, ok := details[c.Name]; !ok {
			details[c.Name] = c.Details
		}
	}

	names := selection.Selected()
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		d, ok := details[name]
		if !ok {
			continue
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(d)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(prompt.Details)
	return b.String(), nil
}

func (s *PromptService) savePrompts(ctx context.Context, prompts []domain.Prompt) error {
	if err := s.prompts.Save(ctx, prompts); err != nil {
		return fmt.Errorf("%w: save prompts: %w", domain.ErrPersistence, err)
	}
	return nil
}

func (s *PromptService) saveCustomers(ctx context.Context, customers []domain.Customer) error {
	if err := s.customers.Save(ctx, customers); err != nil {
		return fmt.Errorf("%w: save customers: %w", domain.ErrPersistence, err)
	}
	return nil
}

func (s *PromptService) loadSelections(ctx context.Context) (domain.SelectionMap, error) {
	selections, err := s.selections.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load selections: %w", domain.ErrPersistence, err)
	}
	if selections == nil {
		selections = make(domain.SelectionMap)
	}
	return selections, nil
}

func (s *PromptService) saveSelections(ctx context.Context, selections domain.SelectionMap) error {
	if err := s.selections.Save(ctx, selections); err != nil {
		return fmt.Errorf("%w: save selections: %w", domain.ErrPersistence, err)
	}
	return nil
}

func filterByName[T any](items []T, query string, name func(T) string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	var out []T
	for _, item := range items {
		if strings.Contains(strings.ToLower(name(item)), query) {
			out = append(out, item)
		}
	}
	return out
}
