package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
)

// File names within the data directory.
const (
	UnpublishedFile = "unpublished_posts.json"
	PublishedFile   = "published_posts.json"
	TagsFile        = "tags.json"
	PromptsFile     = "prompts.json"
	CustomersFile   = "customer_info.json"
	SelectionsFile  = "prompt_customer_info.json"
)

// Store reads and writes JSON documents under one directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: data directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// CollectionPath returns the file backing a collection.
func (s *Store) CollectionPath(kind domain.CollectionKind) string {
	if kind == domain.CollectionPublished {
		return filepath.Join(s.dir, PublishedFile)
	}
	return filepath.Join(s.dir, UnpublishedFile)
}

// Posts returns a PostRepository backed by this store.
func (s *Store) Posts() driven.PostRepository {
	return &postRepository{store: s}
}

// Tags returns a TagRepository backed by this store.
func (s *Store) Tags() driven.TagRepository {
	return &tagRepository{store: s}
}

// Prompts returns a PromptRepository backed by this store.
func (s *Store) Prompts() driven.PromptRepository {
	return &promptRepository{store: s}
}

// Customers returns a CustomerRepository backed by this store.
func (s *Store) Customers() driven.CustomerRepository {
	return &customerRepository{store: s}
}

// Selections returns a SelectionRepository backed by this store.
func (s *Store) Selections() driven.SelectionRepository {
	return &selectionRepository{store: s}
}

// readJSON decodes the file at path into v. A missing or blank file leaves v untouched.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON encodes v and atomically replaces the file at path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return writeAtomic(path, data)
}

// writeAtomic writes data to a temporary sibling file and renames it over path.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// postRepository implements driven.PostRepository.
type postRepository struct {
	store *Store
}

var _ driven.PostRepository = (*postRepository)(nil)

// Load returns the posts in file order.
func (r *postRepository) Load(_ context.Context, kind domain.CollectionKind) ([]domain.Post, error) {
	var posts []domain.Post
	if err := readJSON(r.store.CollectionPath(kind), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Save rewrites the collection file. Blank tags are stored as the sentinel.
func (r *postRepository) Save(_ context.Context, kind domain.CollectionKind, posts []domain.Post) error {
	out := make([]domain.Post, len(posts))
	for i := range posts {
		out[i] = posts[i].Normalised()
	}
	return writeJSON(r.store.CollectionPath(kind), out)
}

// tagRepository implements driven.TagRepository.
type tagRepository struct {
	store *Store
}

var _ driven.TagRepository = (*tagRepository)(nil)

// Load returns the tags in file order.
func (r *tagRepository) Load(_ context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := readJSON(filepath.Join(r.store.dir, TagsFile), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Save rewrites the tags file.
func (r *tagRepository) Save(_ context.Context, tags []domain.Tag) error {
	if tags == nil {
		tags = []domain.Tag{}
	}
	return writeJSON(filepath.Join(r.store.dir, TagsFile), tags)
}

// promptRepository implements driven.PromptRepository.
type promptRepository struct {
	store *Store
}

var _ driven.PromptRepository = (*promptRepository)(nil)

// Load returns the prompts in file order.
func (r *promptRepository) Load(_ context.Context) ([]domain.Prompt, error) {
	var prompts []domain.Prompt
	if err := readJSON(filepath.Join(r.store.dir, PromptsFile), &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// Save rewrites the prompts file.
func (r *promptRepository) Save(_ context.Context, prompts []domain.Prompt) error {
	if prompts == nil {
		prompts = []domain.Prompt{}
	}
	return writeJSON(filepath.Join(r.store.dir, PromptsFile), prompts)
}

// customerRepository implements driven.CustomerRepository.
type customerRepository struct {
	store *Store
}

var _ driven.CustomerRepository = (*customerRepository)(nil)

// Load returns the customers in file order.
func (r *customerRepository) Load(_ context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := readJSON(filepath.Join(r.store.dir, CustomersFile), &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// Save rewrites the customers file.
func (r *customerRepository) Save(_ context.Context, customers []domain.Customer) error {
	if customers == nil {
		customers = []domain.Customer{}
	}
	return writeJSON(filepath.Join(r.store.dir, CustomersFile), customers)
}

// selectionRepository implements driven.SelectionRepository.
type selectionRepository struct {
	store *Store
}

var _ driven.SelectionRepository = (*selectionRepository)(nil)

// Load returns the selection map. A missing file yields an empty map.
func (r *selectionRepository) Load(_ context.Context) (domain.SelectionMap, error) {
	selections := make(domain.SelectionMap)
	if err := readJSON(filepath.Join(r.store.dir, SelectionsFile), &selections); err != nil {
		return nil, err
	}
	return selections, nil
}

// Save rewrites the selections file.
func (r *selectionRepository) Save(_ context.Context, selections domain.SelectionMap) error {
	if selections == nil {
		selections = make(domain.SelectionMap)
	}
	return writeJSON(filepath.Join(r.store.dir, SelectionsFile), selections)
}
