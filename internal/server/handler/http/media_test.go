package http

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentMatchesExtension(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    bool
	}{
		{name: "png", file: "logo.png", content: string(pngHeader), want: true},
		{name: "pdf", file: "paper.pdf", content: "%PDF-1.4\n%\xe2\xe3\xcf\xd3\n", want: true},
		{name: "binary image", file: "disk.img", content: "MZ\x90\x00\x03\x00\x00\x00", want: true},
		{name: "markup as png", file: "x.png", content: scriptPage, want: false},
		{name: "markup as pdf", file: "x.pdf", content: scriptPage, want: false},
		{name: "markup as img", file: "x.img", content: scriptPage, want: false},
		{name: "svg as img", file: "x.img", content: `<svg xmlns="http://www.w3.org/2000/svg"></svg>`, want: false},
		{name: "pdf as png", file: "x.png", content: "%PDF-1.4\n", want: false},
		{name: "unknown extension", file: "logo.gif", content: string(pngHeader), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := strings.NewReader(tt.content)

			ok, err := contentMatchesExtension(tt.file, file)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)

			rest, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(rest))
		})
	}
}
