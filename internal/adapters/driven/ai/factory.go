// Package ai provides factory functions for creating model provider adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/curata/internal/adapters/driven/llm/anthropic"
	openaillm "github.com/custodia-labs/curata/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for provider connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the outcome of LLM initialisation.
// Generation is disabled when LLMService is nil; curation keeps working.
type InitResult struct {
	LLMService driven.LLMService
	Warnings   []string
}

// Close releases the LLM service if one was created.
func (r *InitResult) Close() {
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Init creates the LLM service without a connectivity check.
// Configuration problems become warnings instead of errors.
func Init(settings *domain.LLMSettings) *InitResult {
	result := &InitResult{}
	if settings == nil || !settings.IsConfigured() {
		result.Warnings = append(result.Warnings,
			"LLM provider not configured, generation disabled. Run 'curata settings llm' to configure")
		return result
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("LLM unavailable: %v", err))
		return result
	}
	result.LLMService = svc
	return result
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns (nil, nil) when the provider is not configured.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'curata settings llm' to fix", domain.ErrLLMUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: %w. Run 'curata settings llm' to fix", domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// ValidateLLMConfig creates a service from settings and pings it.
// Used by the settings commands to check credentials before saving.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateLLMService creates the LLM service for the configured provider.
// Returns an error if the provider is not configured or unknown.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: provider and API key are required", domain.ErrInvalidInput)
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:            settings.APIKey,
			BaseURL:           settings.BaseURL,
			Model:             settings.Model,
			RequestsPerMinute: settings.RequestsPerMinute,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:            settings.APIKey,
			BaseURL:           settings.BaseURL,
			Model:             settings.Model,
			RequestsPerMinute: settings.RequestsPerMinute,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
