// Package http provides the HTTP handlers and routing of the CMS.
package http

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/filecms/internal/models"
	"github.com/atinyakov/filecms/internal/view"
)

// DocumentService defines the document operations required by the
// DocumentHandler.
type DocumentService interface {
	// List returns the document names in display order.
	List(ctx context.Context) ([]string, error)
	// Get loads a document with its raw content.
	Get(ctx context.Context, name string) (*models.Document, error)
	// Render loads a document and converts it for display.
	Render(ctx context.Context, name string) (models.RenderedContent, error)
	// Create stores a new empty document.
	Create(ctx context.Context, name string) error
	// Update replaces the content of a document.
	Update(ctx context.Context, name string, content []byte) error
	// Delete removes a document.
	Delete(ctx context.Context, name string) error
}

// DocumentHandler serves the index and the document routes.
type DocumentHandler struct {
	Documents DocumentService
	Media     MediaService
	Pages     *Pages
}

func notFoundMessage(name string) string {
	return name + " does not exist."
}

// missing reports whether err means the named entry cannot be addressed.
func missing(err error) bool {
	return errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidName)
}

// Index handles GET / and lists the documents and media assets.
func (h *DocumentHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := h.Documents.List(ctx)
	if err != nil {
		h.Pages.serverError(w, r, err)
		return
	}
	media, err := h.Media.List(ctx)
	if err != nil {
		h.Pages.serverError(w, r, err)
		return
	}

	h.Pages.render(w, r, http.StatusOK, view.PageIndex, view.Page{
		Data: view.IndexData{Documents: docs, Media: media},
	})
}

// New handles GET /new.
func (h *DocumentHandler) New(w http.ResponseWriter, r *http.Request) {
	h.Pages.render(w, r, http.StatusOK, view.PageNew, view.Page{
		Title: "New Document",
		Data:  view.NewData{},
	})
}

// Show handles GET /{name}. Text documents are sent as text/plain, markdown
// documents are embedded in the site layout.
func (h *DocumentHandler) Show(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	content, err := h.Documents.Render(r.Context(), name)
	switch {
	case err == nil:
	case missing(err):
		h.Pages.redirect(w, r, notFoundMessage(name))
		return
	case errors.Is(err, models.ErrNotRenderable):
		h.Pages.redirect(w, r, name+" cannot be displayed.")
		return
	default:
		h.Pages.serverError(w, r, err)
		return
	}

	if content.Format == models.FormatText {
		w.Header().Set("Content-Type", content.ContentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content.Body)
		return
	}

	title := content.Title
	if title == "" {
		title = name
	}
	h.Pages.render(w, r, http.StatusOK, view.PageDocument, view.Page{
		Title: title,
		Data:  view.DocumentData{Body: template.HTML(content.Body)},
	})
}

// Edit handles GET /{name}/edit.
func (h *DocumentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	doc, err := h.Documents.Get(r.Context(), name)
	if err != nil {
		if missing(err) {
			h.Pages.redirect(w, r, notFoundMessage(name))
			return
		}
		h.Pages.serverError(w, r, err)
		return
	}

	h.Pages.render(w, r, http.StatusOK, view.PageEdit, view.Page{
		Title: "Edit " + name,
		Data:  view.EditData{Name: name, Content: string(doc.Content)},
	})
}

// Create handles POST /create with the "filename" form field.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PostFormValue("filename"))

	err := h.Documents.Create(r.Context(), name)
	if err == nil {
		h.Pages.redirect(w, r, name+" was created.")
		return
	}

	msg, ok := validationMessage(err)
	switch {
	case ok:
	case errors.Is(err, models.ErrAlreadyExists):
		msg = name + " already exists."
	case errors.Is(err, models.ErrInvalidName):
		msg = name + " is not a valid document name."
	default:
		h.Pages.serverError(w, r, err)
		return
	}
	h.Pages.render(w, r, http.StatusUnprocessableEntity, view.PageNew, view.Page{
		Title: "New Document",
		Data:  view.NewData{Filename: name, Error: msg},
	})
}

// Update handles POST /{name} with the "content" form field.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	content := r.PostFormValue("content")

	err := h.Documents.Update(r.Context(), name, []byte(content))
	if err == nil {
		h.Pages.redirect(w, r, name+" has been updated.")
		return
	}
	if msg, ok := validationMessage(err); ok {
		h.Pages.render(w, r, http.StatusUnprocessableEntity, view.PageEdit, view.Page{
			Title: "Edit " + name,
			Data:  view.EditData{Name: name, Content: content, Error: msg},
		})
		return
	}
	if missing(err) {
		h.Pages.redirect(w, r, notFoundMessage(name))
		return
	}
	h.Pages.serverError(w, r, err)
}

// Delete handles POST /{name}/delete.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.Documents.Delete(r.Context(), name); err != nil {
		if missing(err) {
			h.Pages.redirect(w, r, notFoundMessage(name))
			return
		}
		h.Pages.serverError(w, r, err)
		return
	}
	h.Pages.redirect(w, r, name+" was deleted.")
}
