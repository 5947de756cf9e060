// Package promptlog provides an append-only text file record of prompts
// sent to the model.
package promptlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// DefaultFileName is the log file name within the data directory.
const DefaultFileName = "chatgpt_prompts.log"

// timestampLayout renders as "2006-01-02 15:04:05".
const timestampLayout = time.DateTime

// Ensure File implements the interface.
var _ driven.PromptLog = (*File)(nil)

// File appends one line per prompt: "<timestamp> - PROMPT: <text>".
// Newlines inside the prompt are written as \n and backslashes as \\, so each
// entry stays on one line and a literal \n in the prompt stays distinguishable.
type File struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewFile creates a prompt log writing to path.
func NewFile(path string) *File {
	return &File{path: path, now: time.Now}
}

// Path returns the log file path.
func (f *File) Path() string {
	return f.path
}

// Append writes one entry.
func (f *File) Append(_ context.Context, prompt string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening prompt log: %w", err)
	}
	defer file.Close()

	line := fmt.Sprintf("%s - PROMPT: %s\n", f.now().Format(timestampLayout), escape(prompt))
	if _, err := file.WriteString(line); err != nil {
		return fmt.Errorf("writing prompt log: %w", err)
	}
	return nil
}

// Read returns every line in order. A missing log yields an empty slice.
func (f *File) Read(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening prompt log: %w", err)
	}
	defer file.Close()

	lines := []string{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading prompt log: %w", err)
	}
	return lines, nil
}

var escaper = strings.NewReplacer(`\`, `\\`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)

func escape(s string) string {
	return escaper.Replace(s)
}
