package models

import (
	"errors"
	"testing"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr error
	}{
		{"about.md", FormatMarkdown, nil},
		{"changes.txt", FormatText, nil},
		{"NOTES.MD", FormatMarkdown, nil},
		{"photo.png", FormatUnsupported, ErrNotRenderable},
		{"README", FormatUnsupported, ErrNotRenderable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatOf(tt.name)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FormatOf(%q) error = %v; want %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatOf(%q) = %v; want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsMediaExtension(t *testing.T) {
	for name, want := range map[string]bool{
		"logo.png":  true,
		"disk.img":  true,
		"paper.PDF": true,
		"notes.txt": false,
		"photo.jpg": false,
		"png":       false,
	} {
		if got := IsMediaExtension(name); got != want {
			t.Errorf("IsMediaExtension(%q) = %v; want %v", name, got, want)
		}
	}
}

func TestMediaContentType(t *testing.T) {
	for name, want := range map[string]string{
		"logo.png":  "image/png",
		"LOGO.PNG":  "image/png",
		"paper.pdf": "application/pdf",
		"disk.img":  "application/octet-stream",
		"page.html": "application/octet-stream",
		"no-ext":    "application/octet-stream",
	} {
		if got := MediaContentType(name); got != want {
			t.Errorf("MediaContentType(%q) = %q; want %q", name, got, want)
		}
	}
}
