// Package models defines the core data structures for documents, media
// assets, user accounts and rendered content.
package models

import (
	"path/filepath"
	"strings"
)

// User represents an account stored in the credential file.
type User struct {
	// Username is the unique login name.
	Username string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string
}

// Format identifies how a document is rendered. The set is closed:
// only the formats declared below are renderable.
type Format int

const (
	// FormatUnsupported marks a file whose extension has no renderer.
	FormatUnsupported Format = iota
	// FormatText is a ".txt" document served as plain text.
	FormatText
	// FormatMarkdown is a ".md" document converted to HTML.
	FormatMarkdown
)

// String returns the file extension associated with the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatMarkdown:
		return ".md"
	default:
		return "unsupported"
	}
}

// FormatOf returns the format selected by the extension of name.
// It returns ErrNotRenderable for any other extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return FormatText, nil
	case ".md":
		return FormatMarkdown, nil
	default:
		return FormatUnsupported, ErrNotRenderable
	}
}

// Document is a named text file in the content directory.
type Document struct {
	// Name is the file name and acts as the primary key.
	Name string
	// Format is derived from the extension of Name.
	Format Format
	// Content is the raw file content.
	Content []byte
}

// MediaAsset is an uploaded binary file in the media directory.
type MediaAsset struct {
	// Name is the file name.
	Name string
	// Size is the file size in bytes.
	Size int64
}

// MediaExtensions lists the extensions accepted for uploads.
var MediaExtensions = []string{".img", ".pdf", ".png"}

// mediaContentTypes fixes the served content type of each media extension.
var mediaContentTypes = map[string]string{
	".img": "application/octet-stream",
	".pdf": "application/pdf",
	".png": "image/png",
}

// IsMediaExtension reports whether name carries an allowed media extension.
func IsMediaExtension(name string) bool {
	_, ok := mediaContentTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}

// MediaContentType returns the content type a media asset is served with.
// It depends on the extension only; names outside MediaExtensions get
// "application/octet-stream".
func MediaContentType(name string) string {
	if ct, ok := mediaContentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// RenderedContent is the result of rendering a document.
type RenderedContent struct {
	// Format is the format the document was rendered with.
	Format Format
	// ContentType is the MIME type of Body.
	ContentType string
	// Title is taken from markdown front matter; empty otherwise.
	Title string
	// Body holds the raw text or the HTML fragment.
	Body []byte
}
