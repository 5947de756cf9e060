package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage the tag registry",
	Long: `Add, remove or list registered tags.

Posts keep a copy of their tag name, so removing a tag does not change
posts already carrying it.`,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE:  runTagList,
}

var tagAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Register a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagAdd,
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagRemove,
}

func init() {
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	rootCmd.AddCommand(tagCmd)
}

func runTagList(cmd *cobra.Command, _ []string) error {
	if tagService == nil {
		return errNotConfigured("tag")
	}

	tags, err := tagService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	if len(tags) == 0 {
		cmd.Println("No tags.")
		return nil
	}
	for _, t := range tags {
		cmd.Printf("  %s\n", t.Name)
	}
	return nil
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errNotConfigured("tag")
	}
	if err := tagService.Add(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to add tag: %w", err)
	}
	cmd.Printf("Added tag: %s\n", args[0])
	return nil
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errNotConfigured("tag")
	}
	if err := tagService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove tag: %w", err)
	}
	cmd.Printf("Removed tag: %s\n", args[0])
	return nil
}
