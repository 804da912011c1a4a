// Package render turns stored documents into displayable content: plain
// text is passed through, markdown is converted to an HTML fragment.
package render

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/atinyakov/filecms/internal/models"
)

const (
	// ContentTypeText is the content type of rendered ".txt" documents.
	ContentTypeText = "text/plain"
	// ContentTypeHTML is the content type of rendered ".md" documents.
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Renderer converts document bytes according to their format.
// It holds no per-call state and is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer using goldmark with GitHub flavoured markdown.
// Heading IDs and typographic substitutions are left off so headings render
// as plain <h1>..</h1> and the text is kept verbatim.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render renders data as the format selected by the extension of name.
// Unsupported extensions yield models.ErrNotRenderable.
func (r *Renderer) Render(name string, data []byte) (models.RenderedContent, error) {
	format, err := models.FormatOf(name)
	if err != nil {
		return models.RenderedContent{}, fmt.Errorf("%s: %w", name, err)
	}

	switch format {
	case models.FormatText:
		return models.RenderedContent{
			Format:      format,
			ContentType: ContentTypeText,
			Body:        data,
		}, nil
	case models.FormatMarkdown:
		title, body, err := r.markdown(data)
		if err != nil {
			return models.RenderedContent{}, fmt.Errorf("render %s: %w", name, err)
		}
		return models.RenderedContent{
			Format:      format,
			ContentType: ContentTypeHTML,
			Title:       title,
			Body:        body,
		}, nil
	default:
		return models.RenderedContent{}, fmt.Errorf("%s: %w", name, models.ErrNotRenderable)
	}
}

type frontMatter struct {
	Title string `yaml:"title"`
}

// markdown strips optional YAML front matter and converts the rest to HTML.
func (r *Renderer) markdown(source []byte) (string, []byte, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		// not front matter after all; render everything
		body = source
		meta = frontMatter{}
	}

	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", nil, fmt.Errorf("markdown convert: %w", err)
	}
	return meta.Title, buf.Bytes(), nil
}
