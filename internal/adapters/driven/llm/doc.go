// Package llm holds helpers shared by the model provider adapters:
// request pacing and classification of provider failures.
package llm
