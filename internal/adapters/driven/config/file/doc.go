// Package file provides file-based adapters for Curata's settings.
//
// Adapters:
//   - ConfigStore: TOML configuration in ~/.curata/config.toml
//   - PromptStore: editable LLM system prompts in ~/.curata/prompts
package file
