package domain

const unknownDescription = "Unknown"

// Default setting values.
const (
	DefaultMaxTokens = 800
	DefaultLLMModel  = "gpt-4o-mini"
)

// AIProvider identifies a model provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds model provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// APIKey is the provider API key.
	APIKey string

	// MaxTokens caps the completion length.
	MaxTokens int

	// RequestsPerMinute paces outbound requests. Zero disables pacing.
	RequestsPerMinute int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	return l.Provider.IsValid() && l.APIKey != ""
}

// StorageSettings holds object storage configuration.
type StorageSettings struct {
	// Region is the storage region.
	Region string

	// AccessKeyID is the access key (20 characters).
	AccessKeyID string

	// SecretAccessKey is the secret key (40 characters).
	SecretAccessKey string

	// Bucket is the default bucket for media binding.
	Bucket string

	// Folder is the default folder for media binding.
	Folder string
}

// IsConfigured returns true if credentials and region are set.
func (s StorageSettings) IsConfigured() bool {
	return s.Region != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// ValidateCredentials checks the key formats the provider issues.
func (s StorageSettings) ValidateCredentials() error {
	if s.AccessKeyID == "" || s.SecretAccessKey == "" || s.Region == "" {
		return ErrInvalidInput
	}
	if len(s.AccessKeyID) != 20 || len(s.SecretAccessKey) != 40 {
		return ErrInvalidInput
	}
	return nil
}

// AppSettings holds all application settings.
type AppSettings struct {
	// DataDir holds collection files, logs, exports and history.
	DataDir string

	// LLM holds model provider settings.
	LLM LLMSettings

	// Storage holds object storage settings.
	Storage StorageSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Credentials are left empty; operators configure them via settings commands.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider:  AIProviderOpenAI,
			Model:     DefaultLLMModel,
			MaxTokens: DefaultMaxTokens,
		},
	}
}

// AllLLMProviders returns providers that support completions.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOpenAI:    DefaultLLMModel,
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
