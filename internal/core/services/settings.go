package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDataDir           = "data.dir"
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMMaxTokens      = "llm.max_tokens"
	keyLLMRequestsPerMin = "llm.requests_per_minute"
	keyStorageRegion     = "storage.region"
	keyStorageAccessKey  = "storage.access_key_id"
	keyStorageSecretKey  = "storage.secret_access_key"
	keyStorageBucket     = "storage.bucket"
	keyStorageFolder     = "storage.folder"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		DataDir: s.configStore.GetString(keyDataDir),
		LLM: domain.LLMSettings{
			Provider:          s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:             s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:           s.configStore.GetString(keyLLMBaseURL), // No default - empty means the provider's public endpoint
			APIKey:            s.configStore.GetString(keyLLMAPIKey),
			MaxTokens:         s.getInt(keyLLMMaxTokens, defaults.LLM.MaxTokens),
			RequestsPerMinute: s.configStore.GetInt(keyLLMRequestsPerMin),
		},
		Storage: domain.StorageSettings{
			Region:          s.configStore.GetString(keyStorageRegion),
			AccessKeyID:     s.configStore.GetString(keyStorageAccessKey),
			SecretAccessKey: s.configStore.GetString(keyStorageSecretKey),
			Bucket:          s.configStore.GetString(keyStorageBucket),
			Folder:          s.configStore.GetString(keyStorageFolder),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyDataDir, settings.DataDir},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMMaxTokens, settings.LLM.MaxTokens},
		{keyLLMRequestsPerMin, settings.LLM.RequestsPerMinute},
		{keyStorageRegion, settings.Storage.Region},
		{keyStorageBucket, settings.Storage.Bucket},
		{keyStorageFolder, settings.Storage.Folder},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Secrets are only written when present so a partial update never clears them.
	secrets := []struct {
		key   string
		value string
	}{
		{keyLLMAPIKey, settings.LLM.APIKey},
		{keyStorageAccessKey, settings.Storage.AccessKeyID},
		{keyStorageSecretKey, settings.Storage.SecretAccessKey},
	}
	for _, v := range secrets {
		if v.value == "" {
			continue
		}
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	// Cloud providers don't need a custom base URL
	settings.LLM.BaseURL = ""
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// ClearLLMKey removes the stored LLM API key.
func (s *SettingsService) ClearLLMKey() error {
	if err := s.configStore.Set(keyLLMAPIKey, ""); err != nil {
		return fmt.Errorf("clear %s: %w", keyLLMAPIKey, err)
	}
	return nil
}

// SetStorage validates and stores object storage settings.
func (s *SettingsService) SetStorage(storage domain.StorageSettings) error {
	storage.Region = strings.TrimSpace(storage.Region)
	storage.AccessKeyID = strings.TrimSpace(storage.AccessKeyID)
	storage.SecretAccessKey = strings.TrimSpace(storage.SecretAccessKey)
	if err := storage.ValidateCredentials(); err != nil {
		return fmt.Errorf("%w: access key must be 20 characters and secret key 40", err)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Storage = storage
	return s.Save(settings)
}

// SetDataDir changes the directory holding collection files.
func (s *SettingsService) SetDataDir(dir string) error {
	if err := s.configStore.Set(keyDataDir, strings.TrimSpace(dir)); err != nil {
		return fmt.Errorf("save %s: %w", keyDataDir, err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
