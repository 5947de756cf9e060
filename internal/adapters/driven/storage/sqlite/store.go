package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/curata/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// Store is a SQLite database holding submission history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.curata.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".curata")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SubmissionStore returns a SubmissionStore interface backed by this store.
func (s *Store) SubmissionStore() driven.SubmissionStore {
	return &submissionStore{store: s}
}

// migrate applies every embedded NNN_name.up.sql newer than the recorded version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_submissions.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// submissionStore implements driven.SubmissionStore.
type submissionStore struct {
	store *Store
}

var _ driven.SubmissionStore = (*submissionStore)(nil)

// Save stores or replaces a submission.
func (s *submissionStore) Save(ctx context.Context, sub domain.Submission) error {
	if sub.ID == "" {
		return domain.ErrInvalidInput
	}
	rejections := sub.Rejections
	if rejections == nil {
		rejections = []domain.Rejection{}
	}
	rejectionsJSON, err := json.Marshal(rejections)
	if err != nil {
		return fmt.Errorf("marshalling rejections: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO submissions (id, prompt_name, prompt, response, accepted, rejections, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			prompt_name = excluded.prompt_name,
			prompt = excluded.prompt,
			response = excluded.response,
			accepted = excluded.accepted,
			rejections = excluded.rejections,
			error = excluded.error
	`, sub.ID, sub.PromptName, sub.Prompt, sub.Response, sub.Accepted,
		string(rejectionsJSON), sub.Error, sub.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving submission: %w", err)
	}
	return nil
}

// Get retrieves a submission by ID.
func (s *submissionStore) Get(ctx context.Context, id string) (*domain.Submission, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, prompt_name, prompt, response, accepted, rejections, error, created_at
		FROM submissions WHERE id = ?
	`, id)

	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// List returns the most recent submissions, newest first.
func (s *submissionStore) List(ctx context.Context, limit int) ([]domain.Submission, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, prompt_name, prompt, response, accepted, rejections, error, created_at
		FROM submissions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission //nolint:prealloc // size unknown from query
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}

	return subs, nil
}

// Close closes the underlying store.
func (s *submissionStore) Close() error {
	return s.store.Close()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*domain.Submission, error) {
	var sub domain.Submission
	var rejectionsJSON string
	var createdAt sql.NullTime
	if err := row.Scan(&sub.ID, &sub.PromptName, &sub.Prompt, &sub.Response,
		&sub.Accepted, &rejectionsJSON, &sub.Error, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning submission: %w", err)
	}

	if err := json.Unmarshal([]byte(rejectionsJSON), &sub.Rejections); err != nil {
		return nil, fmt.Errorf("unmarshaling rejections: %w", err)
	}
	if len(sub.Rejections) == 0 {
		sub.Rejections = nil
	}
	if createdAt.Valid {
		sub.CreatedAt = createdAt.Time
	}
	return &sub, nil
}
