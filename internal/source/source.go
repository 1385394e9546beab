// Package source loads locally authored documents into the publishing
// pipeline. Plain text and Markdown pass through untouched, HTML is
// converted to Markdown first, and .docx files have their text and
// embedded images extracted.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// EmbeddedImage is an image carried inside a word-processor document.
type EmbeddedImage struct {
	Name        string
	ContentType string
	Data        []byte
}

// Document is a loaded source document. Embedded images are resolved
// lazily: a dry run never reads image bytes at all.
type Document struct {
	Text string

	images func() ([]EmbeddedImage, error)
}

// NewDocument builds a Document from text and an optional image
// resolver. Callers that already hold both (or tests standing in for a
// word-processor source) use this instead of Load.
func NewDocument(text string, images func() ([]EmbeddedImage, error)) *Document {
	return &Document{Text: text, images: images}
}

// Images resolves the document's embedded images. Documents without
// embedded images return nil, nil.
func (d *Document) Images() ([]EmbeddedImage, error) {
	if d.images == nil {
		return nil, nil
	}
	return d.images()
}

// Load reads the document at path, dispatching on the file extension.
func Load(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return loadDocx(path)
	case ".html", ".htm":
		return loadHTML(path)
	default:
		return loadText(path)
	}
}

func loadText(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file %s: %w", path, err)
	}
	return &Document{Text: string(data)}, nil
}

func loadHTML(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file %s: %w", path, err)
	}

	markdown, err := md.NewConverter("", true, nil).ConvertString(string(data))
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return &Document{Text: markdown}, nil
}
