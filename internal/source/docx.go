package source

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fumiama/go-docx"
)

// loadDocx extracts paragraph text through go-docx. Image payloads are
// plain zip entries under word/media/, so they are read straight from
// the archive — and only when a real run asks for them.
func loadDocx(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parsing docx %s: %w", path, err)
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := strings.TrimSpace(fmt.Sprint(para))
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	return &Document{
		Text:   b.String(),
		images: func() ([]EmbeddedImage, error) { return extractMedia(path) },
	}, nil
}

// extractMedia reads every word/media/ entry from the docx archive, in
// name order so uploads are deterministic.
func extractMedia(path string) ([]EmbeddedImage, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening docx archive %s: %w", path, err)
	}
	defer zr.Close()

	var images []EmbeddedImage
	for _, entry := range zr.File {
		if !strings.HasPrefix(entry.Name, "word/media/") || entry.FileInfo().IsDir() {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("opening media entry %s: %w", entry.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading media entry %s: %w", entry.Name, err)
		}

		name := filepath.Base(entry.Name)
		images = append(images, EmbeddedImage{
			Name:        name,
			ContentType: DetectContentType(name, data),
			Data:        data,
		})
	}

	sort.Slice(images, func(i, j int) bool { return images[i].Name < images[j].Name })
	return images, nil
}

var contentTypeByExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

// DetectContentType maps an image file name to its MIME type, sniffing
// the payload when the extension is unknown.
func DetectContentType(name string, data []byte) string {
	if ct, ok := contentTypeByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return http.DetectContentType(data)
}
