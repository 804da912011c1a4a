// Package view renders the HTML pages of the CMS from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/dustin/go-humanize"

	"github.com/atinyakov/filecms/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names.
const (
	PageIndex    = "index"
	PageNew      = "new"
	PageEdit     = "edit"
	PageDocument = "document"
	PageSignIn   = "signin"
	PageSignUp   = "signup"
	PageError    = "error"
)

var pageNames = []string{PageIndex, PageNew, PageEdit, PageDocument, PageSignIn, PageSignUp, PageError}

// Page is the view model shared by every page. Data holds the page
// specific part.
type Page struct {
	Title   string
	Message string
	User    string
	Data    any
}

// IndexData lists the stored documents and media.
type IndexData struct {
	Documents []string
	Media     []models.MediaAsset
}

// NewData backs the create form.
type NewData struct {
	Filename string
	Error    string
}

// EditData backs the edit form.
type EditData struct {
	Name    string
	Content string
	Error   string
}

// DocumentData holds a rendered markdown fragment.
type DocumentData struct {
	Body template.HTML
}

// CredentialsData backs the sign in and sign up forms.
type CredentialsData struct {
	Username string
	Error    string
}

var funcs = template.FuncMap{
	"bytes": func(size int64) string {
		if size < 0 {
			size = 0
		}
		return humanize.Bytes(uint64(size))
	},
	"pathEscape": url.PathEscape,
}

// Renderer executes the page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates. Each page is combined with the
// shared layout.
func New() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page to w. The page is fully executed before
// anything is written, so a template failure leaves w untouched.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("render page %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
