package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/curata/internal/adapters/driven/config/file"
	"github.com/custodia-labs/curata/internal/adapters/driven/export/csvfile"
	"github.com/custodia-labs/curata/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/services"
)

// MockLLMService implements driven.LLMService for testing.
type MockLLMService struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockLLMService) Complete(_ context.Context, _, prompt string, _ driven.CompleteOptions) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.Response, m.Err
}

func (m *MockLLMService) ModelName() string            { return "mock-model" }
func (m *MockLLMService) Ping(_ context.Context) error { return nil }
func (m *MockLLMService) Close() error                 { return nil }

// testEnv exposes the stores behind the installed services.
type testEnv struct {
	posts      *memory.PostStore
	objects    *memory.ObjectStore
	config     *memory.ConfigStore
	llm        *MockLLMService
	exportDir  string
	lifecycle  *services.LifecycleService
	tags       *services.TagService
	promptLogs *memory.PromptLog
}

// setupTestServices installs real services over in-memory adapters.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		posts:      memory.NewPostStore(),
		objects:    memory.NewObjectStore(),
		config:     memory.NewConfigStore(),
		llm:        &MockLLMService{},
		exportDir:  t.TempDir(),
		promptLogs: memory.NewPromptLog(),
	}

	promptStore, err := file.NewPromptStore(t.TempDir())
	require.NoError(t, err)

	env.lifecycle = services.NewLifecycleService(env.posts)
	env.tags = services.NewTagService(memory.NewTagStore())
	settings := services.NewSettingsService(env.config, nil)
	prompts := services.NewPromptService(
		memory.NewPromptCatalogue(), memory.NewCustomerStore(), memory.NewSelectionStore(),
	)
	submissions := memory.NewSubmissionStore()

	SetServices(&Services{
		Lifecycle: env.lifecycle,
		Ingest: services.NewIngestService(
			env.lifecycle, prompts, env.llm, promptStore, env.promptLogs, submissions, 0,
		),
		Media:    services.NewMediaService(env.lifecycle, settings, &memory.ObjectStoreFactory{Store: env.objects}),
		Tags:     env.tags,
		Export:   services.NewExportService(env.lifecycle, csvfile.NewWriter(env.exportDir)),
		Prompts:  prompts,
		History:  services.NewHistoryService(submissions, env.promptLogs),
		Settings: settings,
	})
	t.Cleanup(func() { SetServices(nil) })
	return env
}

// seedPosts stores posts directly in the backing repository.
func (e *testEnv) seedPosts(t *testing.T, kind domain.CollectionKind, posts ...domain.Post) {
	t.Helper()
	require.NoError(t, e.posts.Save(context.Background(), kind, posts))
	require.NoError(t, e.lifecycle.Reload(context.Background(), kind))
}

// listPosts reads a collection through the service.
func (e *testEnv) listPosts(t *testing.T, kind domain.CollectionKind) []domain.Post {
	t.Helper()
	posts, err := e.lifecycle.List(context.Background(), kind)
	require.NoError(t, err)
	return posts
}

// runCommand executes the root command with args and returns the output.
// Flag values are reset first since cobra keeps them between runs.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
