package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past generations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent submissions",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one submission with its raw response",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPromptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Print the prompt log",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrompts,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of submissions")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPromptsCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}

	subs, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	if len(subs) == 0 {
		cmd.Println("No submissions yet.")
		return nil
	}

	for i := range subs {
		status := fmt.Sprintf("%d accepted, %d rejected", subs[i].Accepted, len(subs[i].Rejections))
		if subs[i].Failed() {
			status = "failed: " + subs[i].Error
		}
		name := subs[i].PromptName
		if name == "" {
			name = "(free text)"
		}
		cmd.Printf("  %s  %s  %s  %s\n", subs[i].CreatedAt.Format("2006-01-02 15:04"), subs[i].ID, name, status)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}

	sub, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get submission: %w", err)
	}

	cmd.Printf("Submission: %s\n\n", sub.ID)
	cmd.Printf("  Created:  %s\n", sub.CreatedAt.Format("2006-01-02 15:04:05"))
	if sub.PromptName != "" {
		cmd.Printf("  Prompt:   %s\n", sub.PromptName)
	}
	cmd.Printf("  Accepted: %d\n", sub.Accepted)
	if sub.Failed() {
		cmd.Printf("  Error:    %s\n", sub.Error)
	}
	for _, r := range sub.Rejections {
		cmd.Printf("  Rejected entry %d: %s\n", r.Index, r.Reason)
	}
	if sub.Prompt != "" {
		cmd.Printf("\nPrompt:\n%s\n", sub.Prompt)
	}
	cmd.Printf("\nResponse:\n%s\n", sub.Response)
	return nil
}

func runHistoryPrompts(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}

	lines, err := historyService.PromptLog(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read prompt log: %w", err)
	}
	if len(lines) == 0 {
		cmd.Println("Prompt log is empty.")
		return nil
	}
	for _, l := range lines {
		cmd.Println(l)
	}
	return nil
}
