package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportDryRun bool

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export posts as CSV",
}

var exportReadyCmd = &cobra.Command{
	Use:   "ready",
	Short: "Append publish-ready posts to unpublished_posts.csv",
	Long: `Selects unpublished posts that are marked ready and have both a caption
and a media locator, and appends them as Caption,URL rows.`,
	Args: cobra.NoArgs,
	RunE: runExportReady,
}

var exportPublishedCmd = &cobra.Command{
	Use:   "published",
	Short: "Write every published post to published_posts.csv",
	Args:  cobra.NoArgs,
	RunE:  runExportPublished,
}

func init() {
	exportReadyCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "print the rows without writing")
	exportCmd.AddCommand(exportReadyCmd)
	exportCmd.AddCommand(exportPublishedCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportReady(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}

	if exportDryRun {
		rows, err := exportService.SelectReady(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to select posts: %w", err)
		}
		if len(rows) == 0 {
			cmd.Println("No posts ready to publish.")
			return nil
		}
		for _, r := range rows {
			cmd.Printf("  %s, %s\n", r.Caption, r.MediaLocator)
		}
		cmd.Printf("\n%d posts ready.\n", len(rows))
		return nil
	}

	result, err := exportService.ExportReady(cmd.Context())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	cmd.Printf("Exported %d posts to %s\n", result.Count, result.Path)
	return nil
}

func runExportPublished(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}

	result, err := exportService.ExportPublished(cmd.Context())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	cmd.Printf("Exported %d posts to %s\n", result.Count, result.Path)
	return nil
}
