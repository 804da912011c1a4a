package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/atinyakov/filecms/internal/models"
)

// FileDocumentRepository stores documents as files in a content directory.
type FileDocumentRepository struct {
	files fileDir
}

// NewFileDocumentRepository creates a repository rooted at dir.
// The directory is created on first write if it does not exist.
func NewFileDocumentRepository(dir string) *FileDocumentRepository {
	return &FileDocumentRepository{files: fileDir{dir: dir}}
}

// List returns the names of the regular files in the content directory.
// Subdirectories, including the media directory, are skipped. The order
// is the filesystem's and callers must not rely on it.
func (r *FileDocumentRepository) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := r.files.entries()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Exists reports whether a document with the given name exists.
func (r *FileDocumentRepository) Exists(ctx context.Context, name string) bool {
	if ctx.Err() != nil {
		return false
	}
	_, _, err := r.files.stat(name)
	return err == nil
}

// Read returns the content of the named document, or models.ErrNotFound.
func (r *FileDocumentRepository) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.files.read(name)
}

// Write creates or fully overwrites the named document.
func (r *FileDocumentRepository) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.files.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.files.dir, 0o755); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Create writes an empty document. It fails with models.ErrAlreadyExists
// instead of truncating an existing file.
func (r *FileDocumentRepository) Create(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.files.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.files.dir, 0o755); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", name, models.ErrAlreadyExists)
		}
		return fmt.Errorf("create %s: %w", name, err)
	}
	return f.Close()
}

// Delete removes the named document, or returns models.ErrNotFound.
func (r *FileDocumentRepository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.files.remove(name)
}
