package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/filecms/internal/models"
)

// fakeDocumentService implements DocumentService for testing.
type fakeDocumentService struct {
	names     []string
	listErr   error
	rendered  models.RenderedContent
	renderErr error
	deleteErr error
}

func (f *fakeDocumentService) List(ctx context.Context) ([]string, error) {
	return f.names, f.listErr
}
func (f *fakeDocumentService) Get(ctx context.Context, name string) (*models.Document, error) {
	return nil, models.ErrNotFound
}
func (f *fakeDocumentService) Render(ctx context.Context, name string) (models.RenderedContent, error) {
	return f.rendered, f.renderErr
}
func (f *fakeDocumentService) Create(ctx context.Context, name string) error { return nil }
func (f *fakeDocumentService) Update(ctx context.Context, name string, content []byte) error {
	return nil
}
func (f *fakeDocumentService) Delete(ctx context.Context, name string) error { return f.deleteErr }

// fakeMediaService implements MediaService for testing.
type fakeMediaService struct{}

func (fakeMediaService) List(ctx context.Context) ([]models.MediaAsset, error) { return nil, nil }
func (fakeMediaService) Read(ctx context.Context, name string) ([]byte, error) {
	return nil, models.ErrNotFound
}
func (fakeMediaService) Upload(ctx context.Context, name string, content io.Reader) error {
	return nil
}
func (fakeMediaService) Delete(ctx context.Context, name string) error { return nil }

// withName attaches the chi {name} route parameter to req.
func withName(req *http.Request, name string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("name", name)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestDocumentHandler_Show(t *testing.T) {
	tests := []struct {
		name           string
		service        *fakeDocumentService
		expectedCode   int
		expectedType   string
		expectedSubstr string
	}{
		{
			name: "text document",
			service: &fakeDocumentService{rendered: models.RenderedContent{
				Format: models.FormatText, ContentType: "text/plain", Body: []byte("plain body"),
			}},
			expectedCode:   http.StatusOK,
			expectedType:   "text/plain",
			expectedSubstr: "plain body",
		},
		{
			name: "markdown document",
			service: &fakeDocumentService{rendered: models.RenderedContent{
				Format: models.FormatMarkdown, ContentType: "text/html; charset=utf-8", Body: []byte("<h1>Hi</h1>"),
			}},
			expectedCode:   http.StatusOK,
			expectedType:   "text/html; charset=utf-8",
			expectedSubstr: "<h1>Hi</h1>",
		},
		{
			name:         "missing document",
			service:      &fakeDocumentService{renderErr: models.ErrNotFound},
			expectedCode: http.StatusFound,
		},
		{
			name:           "storage failure",
			service:        &fakeDocumentService{renderErr: errors.New("disk on fire")},
			expectedCode:   http.StatusInternalServerError,
			expectedType:   "text/html; charset=utf-8",
			expectedSubstr: ServerErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := withName(httptest.NewRequest("GET", "/doc", nil), "doc")
			h := &DocumentHandler{Documents: tt.service, Media: fakeMediaService{}, Pages: newPages(t)}

			h.Show(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("status = %d; want %d", rec.Code, tt.expectedCode)
			}
			if tt.expectedType != "" && rec.Header().Get("Content-Type") != tt.expectedType {
				t.Errorf("Content-Type = %q; want %q", rec.Header().Get("Content-Type"), tt.expectedType)
			}
			if !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tt.expectedSubstr)
			}
			if strings.Contains(rec.Body.String(), "disk on fire") {
				t.Error("internal error text leaked to the client")
			}
		})
	}
}

func TestDocumentHandler_IndexListError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	h := &DocumentHandler{
		Documents: &fakeDocumentService{listErr: errors.New("permission denied")},
		Media:     fakeMediaService{},
		Pages:     newPages(t),
	}

	h.Index(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "permission denied") {
		t.Error("internal error text leaked to the client")
	}
}

func TestDocumentHandler_DeleteMissingRedirects(t *testing.T) {
	rec := httptest.NewRecorder()
	req := withName(httptest.NewRequest("POST", "/ghost.txt/delete", nil), "ghost.txt")
	h := &DocumentHandler{
		Documents: &fakeDocumentService{deleteErr: models.ErrNotFound},
		Media:     fakeMediaService{},
		Pages:     newPages(t),
	}

	h.Delete(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d; want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q; want /", loc)
	}
}
