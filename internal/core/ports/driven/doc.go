// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PostRepository: Durable lifecycle collections (full rewrite only)
//   - TagRepository: Tag registry persistence
//   - PromptRepository, CustomerRepository, SelectionRepository: Prompt catalogue
//   - PromptLog: Append-only record of submitted prompts
//   - ExportWriter: Export file output
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Model completions. Without it, generation is disabled.
//   - ObjectStore: Media upload and existence checks. Without it, media binding is disabled.
//   - SubmissionStore: Submission history. Without it, history is not recorded.
//   - ChangeWatcher: External edit notifications for the TUI.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
