package repository

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atinyakov/filecms/internal/models"
)

// FileMediaRepository stores uploaded media as files in a media directory.
type FileMediaRepository struct {
	files fileDir
}

// NewFileMediaRepository creates a repository rooted at dir.
func NewFileMediaRepository(dir string) *FileMediaRepository {
	return &FileMediaRepository{files: fileDir{dir: dir}}
}

// List returns the media assets with their sizes, in filesystem order.
func (r *FileMediaRepository) List(ctx context.Context) ([]models.MediaAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := r.files.entries()
	if err != nil {
		return nil, err
	}
	assets := make([]models.MediaAsset, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		assets = append(assets, models.MediaAsset{Name: e.Name(), Size: info.Size()})
	}
	return assets, nil
}

// Exists reports whether the named asset exists.
func (r *FileMediaRepository) Exists(ctx context.Context, name string) bool {
	if ctx.Err() != nil {
		return false
	}
	_, _, err := r.files.stat(name)
	return err == nil
}

// Read returns the raw bytes of the named asset, or models.ErrNotFound.
func (r *FileMediaRepository) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.files.read(name)
}

// Upload stores content under name. The extension must be one of
// models.MediaExtensions, otherwise models.ErrInvalidExtension is returned
// and nothing is written. An existing asset with the same name is replaced.
func (r *FileMediaRepository) Upload(ctx context.Context, name string, content io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.files.path(name)
	if err != nil {
		return err
	}
	if !models.IsMediaExtension(name) {
		return fmt.Errorf("%s: %w", name, models.ErrInvalidExtension)
	}
	if err := os.MkdirAll(r.files.dir, 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// Delete removes the named asset, or returns models.ErrNotFound.
func (r *FileMediaRepository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.files.remove(name)
}
