package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curata/internal/core/domain"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Manage the prompt catalogue",
	Long: `Create, edit and search reusable generation prompts, and choose which
customers' details are prepended when a prompt is sent.`,
}

var promptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompts",
	Args:  cobra.NoArgs,
	RunE:  runPromptList,
}

var promptShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a prompt and its selected customers",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptShow,
}

var promptSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find prompts by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptSearch,
}

var promptAddCmd = &cobra.Command{
	Use:   "add [name] [details]",
	Short: "Add a prompt",
	Args:  cobra.ExactArgs(2),
	RunE:  runPromptAdd,
}

var promptEditCmd = &cobra.Command{
	Use:   "edit [name] [details]",
	Short: "Replace a prompt's details",
	Args:  cobra.ExactArgs(2),
	RunE:  runPromptEdit,
}

var promptDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptDelete,
}

var promptSelectCmd = &cobra.Command{
	Use:   "select [name] [customer...]",
	Short: "Choose the customers used with a prompt",
	Long:  `Replaces the prompt's customer selection. Pass no customers to clear it.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPromptSelect,
}

var promptBuildCmd = &cobra.Command{
	Use:   "build [name]",
	Short: "Print the text that generate would send",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptBuild,
}

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customer details",
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Args:  cobra.NoArgs,
	RunE:  runCustomerList,
}

var customerShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerShow,
}

var customerSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find customers by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerSearch,
}

var customerAddCmd = &cobra.Command{
	Use:   "add [name] [details]",
	Short: "Add a customer",
	Args:  cobra.ExactArgs(2),
	RunE:  runCustomerAdd,
}

var customerEditCmd = &cobra.Command{
	Use:   "edit [name] [details]",
	Short: "Replace a customer's details",
	Args:  cobra.ExactArgs(2),
	RunE:  runCustomerEdit,
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerDelete,
}

func init() {
	promptCmd.AddCommand(promptListCmd)
	promptCmd.AddCommand(promptShowCmd)
	promptCmd.AddCommand(promptSearchCmd)
	promptCmd.AddCommand(promptAddCmd)
	promptCmd.AddCommand(promptEditCmd)
	promptCmd.AddCommand(promptDeleteCmd)
	promptCmd.AddCommand(promptSelectCmd)
	promptCmd.AddCommand(promptBuildCmd)
	rootCmd.AddCommand(promptCmd)

	customerCmd.AddCommand(customerListCmd)
	customerCmd.AddCommand(customerShowCmd)
	customerCmd.AddCommand(customerSearchCmd)
	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerEditCmd)
	customerCmd.AddCommand(customerDeleteCmd)
	rootCmd.AddCommand(customerCmd)
}

func runPromptList(cmd *cobra.Command, _ []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	prompts, err := promptService.ListPrompts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list prompts: %w", err)
	}
	printPrompts(cmd, prompts)
	return nil
}

func runPromptShow(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	p, err := promptService.GetPrompt(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get prompt: %w", err)
	}
	selection, err := promptService.Selection(cmd.Context(), p.Name)
	if err != nil {
		return fmt.Errorf("failed to get selection: %w", err)
	}

	cmd.Printf("Prompt: %s\n\n%s\n", p.Name, p.Details)
	names := selection.Selected()
	sort.Strings(names)
	if len(names) > 0 {
		cmd.Println("\nSelected customers:")
		for _, n := range names {
			cmd.Printf("  %s\n", n)
		}
	}
	return nil
}

func runPromptSearch(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	prompts, err := promptService.SearchPrompts(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to search prompts: %w", err)
	}
	printPrompts(cmd, prompts)
	return nil
}

func runPromptAdd(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	if err := promptService.CreatePrompt(cmd.Context(), domain.Prompt{Name: args[0], Details: args[1]}); err != nil {
		return fmt.Errorf("failed to add prompt: %w", err)
	}
	cmd.Printf("Added prompt: %s\n", args[0])
	return nil
}

func runPromptEdit(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	if err := promptService.UpdatePrompt(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	cmd.Printf("Updated prompt: %s\n", args[0])
	return nil
}

func runPromptDelete(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	if err := promptService.DeletePrompt(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	cmd.Printf("Deleted prompt: %s\n", args[0])
	return nil
}

func runPromptSelect(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	selection := make(domain.CustomerSelection, len(args)-1)
	for _, name := range args[1:] {
		selection[name] = true
	}
	if err := promptService.SetSelection(cmd.Context(), args[0], selection); err != nil {
		return fmt.Errorf("failed to set selection: %w", err)
	}
	cmd.Printf("Selected %d customers for %s\n", len(selection), args[0])
	return nil
}

func runPromptBuild(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	text, err := promptService.BuildPrompt(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to build prompt: %w", err)
	}
	cmd.Println(text)
	return nil
}

func runCustomerList(cmd *cobra.Command, _ []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	customers, err := promptService.ListCustomers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list customers: %w", err)
	}
	printCustomers(cmd, customers)
	return nil
}

func runCustomerShow(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	c, err := promptService.GetCustomer(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get customer: %w", err)
	}
	cmd.Printf("Customer: %s\n\n%s\n", c.Name, c.Details)
	return nil
}

func runCustomerSearch(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	customers, err := promptService.SearchCustomers(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to search customers: %w", err)
	}
	printCustomers(cmd, customers)
	return nil
}

func runCustomerAdd(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	if err := promptService.CreateCustomer(cmd.Context(), domain.Customer{Name: args[0], Details: args[1]}); err != nil {
		return fmt.Errorf("failed to add customer: %w", err)
	}
	cmd.Printf("Added customer: %s\n", args[0])
	return nil
}

func runCustomerEdit(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	if err := promptService.UpdateCustomer(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	cmd.Printf("Updated customer: %s\n", args[0])
	return nil
}

func runCustomerDelete(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errNotConfigured("prompt")
	}
	if err := promptService.DeleteCustomer(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	cmd.Printf("Deleted customer: %s\n", args[0])
	return nil
}

func printPrompts(cmd *cobra.Command, prompts []domain.Prompt) {
	if len(prompts) == 0 {
		cmd.Println("No prompts.")
		return
	}
	for _, p := range prompts {
		cmd.Printf("  %s\n", p.Name)
	}
}

func printCustomers(cmd *cobra.Command, customers []domain.Customer) {
	if len(customers) == 0 {
		cmd.Println("No customers.")
		return
	}
	for _, c := range customers {
		cmd.Printf("  %s\n", c.Name)
	}
}
