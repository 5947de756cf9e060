// Package app wires the driven adapters into the services the CLI uses.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/curata/internal/adapters/driven/ai"
	"github.com/custodia-labs/curata/internal/adapters/driven/config/file"
	"github.com/custodia-labs/curata/internal/adapters/driven/export/csvfile"
	"github.com/custodia-labs/curata/internal/adapters/driven/objectstore/s3"
	"github.com/custodia-labs/curata/internal/adapters/driven/promptlog"
	"github.com/custodia-labs/curata/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/curata/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/curata/internal/adapters/driven/watcher/fswatch"
	"github.com/custodia-labs/curata/internal/adapters/driving/cli"
	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/services"
	"github.com/custodia-labs/curata/internal/logger"
)

// dataSubdir is the data directory under the config directory when data.dir is unset.
const dataSubdir = "data"

// Build opens the configuration and data stores and returns the services.
// The LLM provider is optional; without it generation is disabled.
func Build(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	dataDir, err := ResolveDataDir(opts, settings.DataDir, filepath.Dir(configStore.Path()))
	if err != nil {
		return nil, err
	}
	logger.Debug("data directory: %s", dataDir)

	store, err := jsonfile.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open data directory: %w", err)
	}
	history, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	promptStore, err := file.NewPromptStore(filepath.Join(filepath.Dir(configStore.Path()), "prompts"))
	if err != nil {
		history.Close()
		return nil, fmt.Errorf("open prompts: %w", err)
	}

	llm := ai.Init(&settings.LLM)
	promptLog := promptlog.NewFile(filepath.Join(dataDir, promptlog.DefaultFileName))

	lifecycle := services.NewLifecycleService(store.Posts())
	prompts := services.NewPromptService(store.Prompts(), store.Customers(), store.Selections())
	submissions := history.SubmissionStore()

	return &cli.Services{
		Lifecycle: lifecycle,
		Ingest: services.NewIngestService(
			lifecycle, prompts, llm.LLMService, promptStore, promptLog, submissions, settings.LLM.MaxTokens,
		),
		Media:    services.NewMediaService(lifecycle, settingsService, s3.NewFactory()),
		Tags:     services.NewTagService(store.Tags()),
		Export:   services.NewExportService(lifecycle, csvfile.NewWriter(dataDir)),
		Prompts:  prompts,
		History:  services.NewHistoryService(submissions, promptLog),
		Settings: settingsService,
		NewWatcher: func() (driven.ChangeWatcher, error) {
			return fswatch.New(map[domain.CollectionKind]string{
				domain.CollectionUnpublished: store.CollectionPath(domain.CollectionUnpublished),
				domain.CollectionPublished:   store.CollectionPath(domain.CollectionPublished),
			}, 0)
		},
		Warnings: llm.Warnings,
		Close: func() {
			llm.Close()
			if err := history.Close(); err != nil {
				logger.Warn("close history: %v", err)
			}
		},
	}, nil
}

// ResolveDataDir picks the data directory: the --data-dir flag, then the
// data.dir setting, then <configDir>/data. A leading ~ is expanded.
func ResolveDataDir(opts cli.Options, configured, configDir string) (string, error) {
	dir := opts.DataDir
	if dir == "" {
		dir = configured
	}
	if dir == "" {
		return filepath.Join(configDir, dataSubdir), nil
	}
	return expandHome(dir)
}

func expandHome(path string) (string, error) {
	if path != "~" && !hasHomePrefix(path) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func hasHomePrefix(path string) bool {
	return len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)
}
