package service

import (
	"context"
	"io"
	"sort"

	"github.com/atinyakov/filecms/internal/models"
)

// MediaRepository defines the persistence operations needed by the
// MediaService.
type MediaRepository interface {
	List(ctx context.Context) ([]models.MediaAsset, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Upload(ctx context.Context, name string, content io.Reader) error
	Delete(ctx context.Context, name string) error
}

// MediaService implements the media operations of the CMS.
type MediaService struct {
	repo MediaRepository
}

// NewMediaService constructs a MediaService.
func NewMediaService(repo MediaRepository) *MediaService {
	return &MediaService{repo: repo}
}

// List returns the media assets sorted by name.
func (s *MediaService) List(ctx context.Context) ([]models.MediaAsset, error) {
	assets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets, nil
}

// Read returns the raw bytes of the named asset.
func (s *MediaService) Read(ctx context.Context, name string) ([]byte, error) {
	return s.repo.Read(ctx, name)
}

// Upload stores content under name, replacing any asset of the same name.
func (s *MediaService) Upload(ctx context.Context, name string, content io.Reader) error {
	return s.repo.Upload(ctx, name, content)
}

// Delete removes the named asset.
func (s *MediaService) Delete(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, name)
}
