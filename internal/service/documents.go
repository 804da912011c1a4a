package service

import (
	"context"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/atinyakov/filecms/internal/models"
)

// Validation errors for document names.
var (
	ErrNameRequired      = validation.NewError("document_name_required", "A name is required.")
	ErrNameNotRenderable = validation.NewError("document_name_format", "Name must end in .txt or .md.")
)

// DocumentRepository defines the persistence operations needed by the
// DocumentService.
type DocumentRepository interface {
	// List returns the names of all documents.
	List(ctx context.Context) ([]string, error)
	// Exists reports whether name is stored.
	Exists(ctx context.Context, name string) bool
	// Read returns the raw content of name.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write creates or overwrites name.
	Write(ctx context.Context, name string, data []byte) error
	// Create stores an empty document, failing if name exists.
	Create(ctx context.Context, name string) error
	// Delete removes name.
	Delete(ctx context.Context, name string) error
}

// Renderer turns document content into displayable content.
type Renderer interface {
	Render(name string, data []byte) (models.RenderedContent, error)
}

// DocumentService implements the document operations of the CMS.
type DocumentService struct {
	repo     DocumentRepository
	renderer Renderer
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(repo DocumentRepository, renderer Renderer) *DocumentService {
	return &DocumentService{repo: repo, renderer: renderer}
}

// ValidateName checks that name is present and has a renderable extension.
func ValidateName(name string) error {
	return validation.Validate(name,
		validation.Required.ErrorObject(ErrNameRequired),
		validation.By(func(value any) error {
			if _, err := models.FormatOf(value.(string)); err != nil {
				return ErrNameNotRenderable
			}
			return nil
		}),
	)
}

// List returns the document names sorted alphabetically.
func (s *DocumentService) List(ctx context.Context) ([]string, error) {
	names, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Get loads a document with its raw content.
func (s *DocumentService) Get(ctx context.Context, name string) (*models.Document, error) {
	content, err := s.repo.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	format, _ := models.FormatOf(name)
	return &models.Document{Name: name, Format: format, Content: content}, nil
}

// Render loads and renders the named document.
func (s *DocumentService) Render(ctx context.Context, name string) (models.RenderedContent, error) {
	content, err := s.repo.Read(ctx, name)
	if err != nil {
		return models.RenderedContent{}, err
	}
	return s.renderer.Render(name, content)
}

// Create validates name and stores an empty document under it.
func (s *DocumentService) Create(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return s.repo.Create(ctx, name)
}

// Update replaces the whole content of name. The document is created when
// it does not exist yet.
func (s *DocumentService) Update(ctx context.Context, name string, content []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := s.repo.Write(ctx, name, content); err != nil {
		return fmt.Errorf("update %s: %w", name, err)
	}
	return nil
}

// Delete removes the named document.
func (s *DocumentService) Delete(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, name)
}
