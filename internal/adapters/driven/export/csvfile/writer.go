// Package csvfile writes post exports as CSV files in the data directory.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// Export file names within the output directory.
const (
	ReadyFile     = "unpublished_posts.csv"
	PublishedFile = "published_posts.csv"
)

var (
	readyHeader     = []string{"Caption", "URL"}
	publishedHeader = []string{
		"Title", "Description", "Type", "Caption",
		"S3 Bucket URL", "S3 Folder Path", "S3 File Name", "Ready to Publish",
	}
)

// Ensure Writer implements the interface.
var _ driven.ExportWriter = (*Writer)(nil)

// Writer writes export files into one directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer for dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// AppendReady appends rows to the ready export. The header is written only
// when the file does not exist yet.
func (w *Writer) AppendReady(_ context.Context, rows []domain.ExportRow) (string, error) {
	path := filepath.Join(w.dir, ReadyFile)
	if err := os.MkdirAll(w.dir, 0700); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", ReadyFile, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if isNew {
		if err := cw.Write(readyHeader); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Caption, row.MediaLocator}); err != nil {
			return "", fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", ReadyFile, err)
	}
	return path, nil
}

// WritePublished overwrites the published export with a header and one row per post.
func (w *Writer) WritePublished(_ context.Context, posts []domain.Post) (string, error) {
	path := filepath.Join(w.dir, PublishedFile)
	if err := os.MkdirAll(w.dir, 0700); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", PublishedFile, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(publishedHeader); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for _, p := range posts {
		record := []string{
			p.Title, p.Description, p.Type, p.Caption,
			p.BucketRef, p.FolderRef, p.MediaLocator,
			strconv.FormatBool(p.ReadyToPublish),
		}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", PublishedFile, err)
	}
	return path, nil
}
