package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

var generateText string

var generateCmd = &cobra.Command{
	Use:   "generate [prompt-name]",
	Short: "Generate posts from a catalogue prompt",
	Long: `Builds the named prompt with its selected customers, sends it to the
configured model and appends every valid post in the reply to the
unpublished collection.

Use --text to send free prompt text instead of a catalogue prompt.

Examples:
  curata generate "Weekly Jokes"
  curata generate --text "Write 3 jokes about coffee."`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Ingest a saved model response",
	Long: `Parses model output obtained out of band and appends every valid post
to the unpublished collection. Reads standard input when file is "-".`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	generateCmd.Flags().StringVarP(&generateText, "text", "t", "", "free prompt text")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(importCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errNotConfigured("ingest")
	}

	var (
		result *driving.IngestResult
		err    error
	)
	switch {
	case generateText != "" && len(args) == 0:
		cmd.Println("Generating posts...")
		result, err = ingestService.SubmitText(cmd.Context(), generateText)
	case generateText == "" && len(args) == 1:
		cmd.Printf("Generating posts from prompt %q...\n", args[0])
		result, err = ingestService.Submit(cmd.Context(), args[0])
	default:
		return fmt.Errorf("provide either a prompt name or --text")
	}

	if result != nil {
		printIngestResult(cmd, result)
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errNotConfigured("ingest")
	}

	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	result, err := ingestService.Import(cmd.Context(), string(data))
	if result != nil {
		printIngestResult(cmd, result)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return nil
}

func printIngestResult(cmd *cobra.Command, result *driving.IngestResult) {
	cmd.Printf("Added %d posts to unpublished.\n", len(result.Posts))
	for i := range result.Posts {
		cmd.Printf("  + %s\n", result.Posts[i].Caption)
	}
	if len(result.Rejections) > 0 {
		cmd.Printf("Skipped %d entries:\n", len(result.Rejections))
		for _, r := range result.Rejections {
			cmd.Printf("  - entry %d: %s\n", r.Index, r.Reason)
		}
	}
	if result.SubmissionID != "" {
		cmd.Printf("Submission: %s\n", result.SubmissionID)
	}
}
