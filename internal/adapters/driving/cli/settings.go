package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/curata/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the model provider, object storage and data directory.

Settings are stored in ~/.curata/config.toml. Any key can be overridden
with an environment variable, e.g. CURATA_LLM_API_KEY for llm.api_key.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the LLM provider",
	Long:  `Choose the model provider and model, and store its API key.`,
	RunE:  runSettingsLLM,
}

var settingsClearKeyCmd = &cobra.Command{
	Use:   "clear-key",
	Short: "Remove the stored LLM API key",
	RunE:  runSettingsClearKey,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Configure object storage",
	Long: `Store the region and access keys used for media uploads, and the
default bucket and folder.`,
	RunE: runSettingsStorage,
}

var settingsDataDirCmd = &cobra.Command{
	Use:   "data-dir [path]",
	Short: "Set the directory holding posts, tags and prompts",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDataDir,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsClearKeyCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	settingsCmd.AddCommand(settingsDataDirCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Data]")
	cmd.Printf("  Directory: %s\n", settings.DataDir)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	cmd.Printf("  Max tokens: %d\n", settings.LLM.MaxTokens)
	if settings.LLM.RequestsPerMinute > 0 {
		cmd.Printf("  Requests per minute: %d\n", settings.LLM.RequestsPerMinute)
	}
	if settings.LLM.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Region: %s\n", settings.Storage.Region)
	if settings.Storage.AccessKeyID != "" {
		cmd.Printf("  Access Key: %s\n", maskAPIKey(settings.Storage.AccessKeyID))
	} else {
		cmd.Printf("  Access Key: (not set)\n")
	}
	cmd.Printf("  Bucket: %s\n", settings.Storage.Bucket)
	cmd.Printf("  Folder: %s\n", settings.Storage.Folder)
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Storage.IsConfigured()))

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	cmd.Print("Enter API key: ")
	apiKey := readPassword(reader)
	cmd.Println()
	if apiKey == "" {
		return fmt.Errorf("%w: API key is required", domain.ErrInvalidInput)
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %s\n", domain.UserMessage(err))
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n", selectedProvider.Description(), model)
	return nil
}

func runSettingsClearKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	if err := settingsService.ClearLLMKey(); err != nil {
		return fmt.Errorf("failed to clear API key: %w", err)
	}
	cmd.Println("API key cleared.")
	return nil
}

func runSettingsStorage(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	storage := current.Storage

	storage.Region = prompt(cmd, reader, "Region", storage.Region)

	cmd.Print("Access key ID: ")
	storage.AccessKeyID = readPassword(reader)
	cmd.Println()
	cmd.Print("Secret access key: ")
	storage.SecretAccessKey = readPassword(reader)
	cmd.Println()

	storage.Bucket = prompt(cmd, reader, "Default bucket", storage.Bucket)
	storage.Folder = prompt(cmd, reader, "Default folder", storage.Folder)

	if err := settingsService.SetStorage(storage); err != nil {
		return fmt.Errorf("failed to configure storage: %w", err)
	}
	cmd.Println("Credentials saved successfully.")
	return nil
}

func runSettingsDataDir(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	if err := settingsService.SetDataDir(args[0]); err != nil {
		return fmt.Errorf("failed to set data directory: %w", err)
	}
	cmd.Printf("Data directory: %s\n", args[0])
	return nil
}

// Helper functions.

func prompt(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	cmd.Printf("%s [%s]: ", label, current)
	if v := readLine(reader); v != "" {
		return v
	}
	return current
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when stdin is a terminal, otherwise from reader.
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
