// Package cli provides the cobra command tree for Curata.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/core/ports/driving"
	"github.com/custodia-labs/curata/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// Options are the global flags handed to the service builder.
type Options struct {
	ConfigDir string
	DataDir   string
	Verbose   bool
}

// Services holds the driving ports the commands call.
// Any field may be nil; commands report the missing service.
type Services struct {
	Lifecycle driving.LifecycleService
	Ingest    driving.IngestService
	Media     driving.MediaService
	Tags      driving.TagService
	Export    driving.ExportService
	Prompts   driving.PromptService
	History   driving.HistoryService
	Settings  driving.SettingsService

	// NewWatcher opens a watcher over the collection files. Optional.
	NewWatcher func() (driven.ChangeWatcher, error)

	// Warnings are non-fatal startup issues, printed in verbose mode.
	Warnings []string

	// Close releases adapters. Optional.
	Close func()
}

// Builder creates services from the global flags.
type Builder func(opts Options) (*Services, error)

var (
	opts    Options
	builder Builder
	closeFn func()

	lifecycleService driving.LifecycleService
	ingestService    driving.IngestService
	mediaService     driving.MediaService
	tagService       driving.TagService
	exportService    driving.ExportService
	promptService    driving.PromptService
	historyService   driving.HistoryService
	settingsService  driving.SettingsService
	newWatcher       func() (driven.ChangeWatcher, error)
)

var rootCmd = &cobra.Command{
	Use:   "curata",
	Short: "Curate LLM-generated social media posts",
	Long: `Curata turns model output into social media posts and tracks them
from draft to published.

Generate or import posts, bind media, tag them, mark them ready and
publish. Ready posts can be exported as CSV for a scheduler.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if closeFn != nil {
			closeFn()
			closeFn = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.curata)")
	rootCmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "data directory (overrides data.dir)")
}

// SetServices installs services directly, bypassing the builder.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	lifecycleService = s.Lifecycle
	ingestService = s.Ingest
	mediaService = s.Media
	tagService = s.Tags
	exportService = s.Export
	promptService = s.Prompts
	historyService = s.History
	settingsService = s.Settings
	newWatcher = s.NewWatcher
	closeFn = s.Close
}

// Execute runs the root command. build is called once the flags are parsed.
func Execute(build Builder) {
	builder = build
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", domain.UserMessage(err))
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)
	if builder == nil || skipBuild(cmd) {
		return nil
	}

	services, err := builder(opts)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	for _, w := range services.Warnings {
		logger.Warn("%s", w)
	}
	SetServices(services)
	return nil
}

// skipBuild reports whether cmd runs without services.
func skipBuild(cmd *cobra.Command) bool {
	if cmd == versionCmd || cmd.Name() == "help" || cmd.Name() == "completion" {
		return true
	}
	return cmd.HasParent() && cmd.Parent().Name() == "completion"
}

// errNotConfigured returns the error for a missing service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
