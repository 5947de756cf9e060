package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// Ensure PromptLog implements the interface.
var _ driven.PromptLog = (*PromptLog)(nil)

// PromptLog is an in-memory implementation of driven.PromptLog for testing.
// Entries hold the raw prompt text without a timestamp.
type PromptLog struct {
	mu      sync.RWMutex
	entries []string
}

// NewPromptLog creates a new in-memory prompt log.
func NewPromptLog() *PromptLog {
	return &PromptLog{}
}

// Append records a prompt.
func (l *PromptLog) Append(_ context.Context, prompt string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, prompt)
	return nil
}

// Read returns a copy of the recorded prompts.
func (l *PromptLog) Read(_ context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out, nil
}
