package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

// FileStore keeps one JSON file per record in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store in dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "create store dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Put stores a record, assigning a UUID when the ID is empty.
func (s *FileStore) Put(ctx context.Context, r *Record) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeStore, err, "marshal record %s", r.ID)
	}
	if err := os.WriteFile(s.recordPath(r.ID), data, 0644); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeStore, err, "write record %s", r.ID)
	}
	return r.ID, nil
}

// Get retrieves a record by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	data, err := os.ReadFile(s.recordPath(id))
	if os.IsNotExist(err) {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "network %s not found", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "read record %s", id)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "parse record %s", id)
	}
	return &r, nil
}

// List returns summaries of all records, newest first.
func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "read store dir %s", s.dir)
	}
	var out []Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		r, err := s.Get(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue // skip unreadable records, keep listing
		}
		out = append(out, summarize(*r))
	}
	slices.SortFunc(out, func(a, b Summary) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// Delete removes a record.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.recordPath(id))
	if os.IsNotExist(err) {
		return apperrors.New(apperrors.ErrCodeNotFound, "network %s not found", id)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "delete record %s", id)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
