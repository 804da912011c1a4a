package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/filecms/internal/models"
	"github.com/atinyakov/filecms/internal/view"
)

// Upload failure messages.
const (
	InvalidFileTypeMessage = "Invalid file type."
	MissingFileMessage     = "Choose a file to upload."
	FileTooLargeMessage    = "File is too large."
)

// MediaService defines the media operations required by the MediaHandler.
type MediaService interface {
	List(ctx context.Context) ([]models.MediaAsset, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Upload(ctx context.Context, name string, content io.Reader) error
	Delete(ctx context.Context, name string) error
}

// MediaHandler serves the /media routes.
type MediaHandler struct {
	Media     MediaService
	Documents DocumentService
	Pages     *Pages
}

// Show handles GET /media/{name} and streams the stored bytes. The content
// type follows the extension and browsers are told not to sniff it.
func (h *MediaHandler) Show(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	data, err := h.Media.Read(r.Context(), name)
	if err != nil {
		if missing(err) {
			h.Pages.redirect(w, r, notFoundMessage(name))
			return
		}
		h.Pages.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", models.MediaContentType(name))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Upload handles POST /media/upload with a multipart "file" field.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.rejectUpload(w, r, http.StatusRequestEntityTooLarge, FileTooLargeMessage)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			h.rejectUpload(w, r, http.StatusUnprocessableEntity, MissingFileMessage)
		default:
			h.Pages.serverError(w, r, err)
		}
		return
	}
	defer file.Close()

	ok, err := contentMatchesExtension(header.Filename, file)
	if err != nil {
		h.Pages.serverError(w, r, err)
		return
	}
	if !ok {
		h.rejectUpload(w, r, http.StatusUnprocessableEntity, InvalidFileTypeMessage)
		return
	}

	err = h.Media.Upload(r.Context(), header.Filename, file)
	switch {
	case err == nil:
		h.Pages.redirect(w, r, "File uploaded.")
	case errors.Is(err, models.ErrInvalidExtension), errors.Is(err, models.ErrInvalidName):
		h.rejectUpload(w, r, http.StatusUnprocessableEntity, InvalidFileTypeMessage)
	default:
		h.Pages.serverError(w, r, err)
	}
}

// contentMatchesExtension sniffs the start of file and checks it against
// the extension of name. ".img" accepts any binary content but no markup or
// text. file is rewound afterwards.
func contentMatchesExtension(name string, file io.ReadSeeker) (bool, error) {
	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return false, fmt.Errorf("detect %s: %w", name, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("rewind %s: %w", name, err)
	}

	if !models.IsMediaExtension(name) {
		return false, nil
	}
	switch ct := models.MediaContentType(name); ct {
	case "application/octet-stream":
		for mt := detected; mt != nil; mt = mt.Parent() {
			if strings.HasPrefix(mt.String(), "text/") || mt.Is("image/svg+xml") {
				return false, nil
			}
		}
		return true, nil
	default:
		return detected.Is(ct), nil
	}
}

// rejectUpload re-renders the index with msg.
func (h *MediaHandler) rejectUpload(w http.ResponseWriter, r *http.Request, status int, msg string) {
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

	h.Pages.render(w, r, status, view.PageIndex, view.Page{
		Message: msg,
		Data:    view.IndexData{Documents: docs, Media: media},
	})
}

// Delete handles POST /media/{name}/delete.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.Media.Delete(r.Context(), name); err != nil {
		if missing(err) {
			h.Pages.redirect(w, r, notFoundMessage(name))
			return
		}
		h.Pages.serverError(w, r, err)
		return
	}
	h.Pages.redirect(w, r, name+" was deleted.")
}
