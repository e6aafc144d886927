package record

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// FileRepository stores all book records in one pretty-printed JSON array
// on disk. Every operation re-reads the file, transforms the full slice in
// memory and, for mutations, rewrites the file in place. A mutex serializes
// the read-modify-write cycles within this process; the file itself is not
// locked, so an external writer still wins wholesale.
type FileRepository struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewFileRepository creates the parent directory if missing. The file
// itself is created lazily on first read.
func NewFileRepository(path string) (*FileRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	return &FileRepository{path: path, now: time.Now}, nil
}

func (r *FileRepository) List(ctx context.Context) ([]Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Create assigns a timestamp-derived ID and appends the record. When two
// creations land on the same millisecond the candidate ID is bumped until
// it is unused, so IDs stay unique within one store file.
func (r *FileRepository) Create(ctx context.Context, b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books, err := r.load()
	if err != nil {
		return Book{}, err
	}

	id := r.now().UnixMilli()
	for containsID(books, strconv.FormatInt(id, 10)) {
		id++
	}
	b.ID = strconv.FormatInt(id, 10)

	books = append(books, b)
	if err := r.save(books); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *FileRepository) Update(ctx context.Context, id string, patch Payload) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books, err := r.load()
	if err != nil {
		return Book{}, err
	}

	for i := range books {
		if books[i].ID != id {
			continue
		}
		if err := books[i].Merge(patch); err != nil {
			return Book{}, err
		}
		if err := r.save(books); err != nil {
			return Book{}, err
		}
		return books[i], nil
	}
	return Book{}, ErrNotFound
}

// Delete removes the record with the matching ID. The store is only
// rewritten when something was actually removed.
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	books, err := r.load()
	if err != nil {
		return err
	}

	kept := books[:0:0]
	for _, b := range books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(books) {
		return ErrNotFound
	}
	return r.save(kept)
}

// load reads the whole store file. A missing file is created holding an
// empty array; malformed contents propagate as an error, never repaired.
func (r *FileRepository) load() ([]Book, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		if err := r.save(nil); err != nil {
			return nil, err
		}
		return []Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parse store: %w", err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

func (r *FileRepository) save(books []Book) error {
	if books == nil {
		books = []Book{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}

func containsID(books []Book, id string) bool {
	for _, b := range books {
		if b.ID == id {
			return true
		}
	}
	return false
}
