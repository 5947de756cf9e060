package driving

import "github.com/custodia-labs/curata/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// ClearLLMKey removes the stored LLM API key.
	ClearLLMKey() error

	// SetStorage validates and stores object storage settings.
	SetStorage(storage domain.StorageSettings) error

	// SetDataDir changes the directory holding collection files.
	SetDataDir(dir string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
