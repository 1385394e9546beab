// Package publish drives the document-to-CMS pipeline: load, normalize,
// derive metadata, upload images, create the post.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/s98978ym/archeco-recruit/cms"
	"github.com/s98978ym/archeco-recruit/internal/article"
	"github.com/s98978ym/archeco-recruit/internal/eyecatch"
	"github.com/s98978ym/archeco-recruit/internal/source"
)

// Uploader sends a binary payload to the CMS and returns its public URL.
type Uploader interface {
	UploadMedia(ctx context.Context, data []byte, contentType, filename string) (string, error)
}

// Creator creates a post record in the CMS and returns its ID.
type Creator interface {
	CreatePost(ctx context.Context, rec cms.PublishRecord) (string, error)
}

// Options is one publish invocation. Explicit values win over derived
// ones.
type Options struct {
	SourcePath string
	ImagePaths []string

	Title    string
	Category string
	Writer   string
	Featured bool
	DryRun   bool

	// Classifier overrides the embedded keyword lists when non-nil.
	Classifier *article.Classifier

	// Describe, when non-nil, generates the lead description. Errors
	// fall back to the derived description.
	Describe func(text string) (string, error)
}

// Publisher runs the pipeline against a CMS.
type Publisher struct {
	uploader Uploader
	creator  Creator
	log      *zap.Logger
	out      io.Writer
}

// New creates a Publisher. uploader and creator may be nil for dry runs,
// which never touch the network.
func New(uploader Uploader, creator Creator, log *zap.Logger, out io.Writer) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Publisher{uploader: uploader, creator: creator, log: log, out: out}
}

// Run executes one publish invocation. Precondition failures (missing
// source, category outside the fixed set) happen before any network
// call. An eyecatch upload failure degrades to publishing without an
// eyecatch; a post-creation failure is returned to the caller.
func (p *Publisher) Run(ctx context.Context, opts Options) error {
	if opts.SourcePath == "" {
		return errors.New("source file is required")
	}

	var category article.Category
	if opts.Category != "" {
		parsed, err := article.ParseCategory(opts.Category)
		if err != nil {
			return err
		}
		category = parsed
	}

	doc, err := source.Load(opts.SourcePath)
	if err != nil {
		return err
	}

	html := article.Normalize(doc.Text)

	title := opts.Title
	if title == "" {
		title = article.DeriveTitle(doc.Text)
	}
	if opts.Category == "" {
		if opts.Classifier != nil {
			category = opts.Classifier.Classify(doc.Text)
		} else {
			category = article.DeriveCategory(doc.Text)
		}
	}
	description := article.DeriveDescription(doc.Text)
	if opts.Describe != nil {
		generated, err := opts.Describe(doc.Text)
		if err != nil {
			p.log.Warn("description generation failed, using derived description", zap.Error(err))
		} else if generated != "" {
			description = article.Ellipsize(generated, 120)
		}
	}

	p.log.Info("derived metadata",
		zap.String("title", title),
		zap.String("category", string(category)),
	)

	eyecatchURL := p.uploadEyecatch(ctx, opts)

	if !opts.DryRun {
		html, eyecatchURL = p.uploadEmbedded(ctx, doc, html, eyecatchURL)
	}

	rec := cms.PublishRecord{
		Title:       title,
		Content:     html,
		Category:    []string{string(category)},
		Description: description,
		Featured:    opts.Featured,
		Writer:      opts.Writer,
		Eyecatch:    eyecatchURL,
	}

	if opts.DryRun {
		return p.printRecord(rec)
	}

	id, err := p.creator.CreatePost(ctx, rec)
	if err != nil {
		return fmt.Errorf("creating post: %w", err)
	}
	p.log.Info("published", zap.String("id", id), zap.String("title", rec.Title))
	return nil
}

// uploadEyecatch picks the largest image candidate and uploads it. Any
// failure is logged and the post proceeds without an eyecatch.
func (p *Publisher) uploadEyecatch(ctx context.Context, opts Options) string {
	best, ok := eyecatch.SelectBest(opts.ImagePaths)
	if !ok {
		return ""
	}
	if opts.DryRun {
		p.log.Info("dry run: skipping eyecatch upload", zap.String("path", best))
		return ""
	}

	data, err := os.ReadFile(best)
	if err != nil {
		p.log.Warn("reading eyecatch failed, publishing without eyecatch",
			zap.String("path", best), zap.Error(err))
		return ""
	}

	url, err := p.uploader.UploadMedia(ctx, data, source.DetectContentType(best, data), filepath.Base(best))
	if err != nil {
		p.log.Warn("eyecatch upload failed, publishing without eyecatch",
			zap.String("path", best), zap.Error(err))
		return ""
	}
	p.log.Info("uploaded eyecatch", zap.String("url", url))
	return url
}

// uploadEmbedded uploads each image embedded in the source document,
// appending an img element per upload. The first uploaded image becomes
// the eyecatch when none was selected. A failed upload skips that image
// only.
func (p *Publisher) uploadEmbedded(ctx context.Context, doc *source.Document, html, eyecatchURL string) (string, string) {
	images, err := doc.Images()
	if err != nil {
		p.log.Warn("resolving embedded images failed, publishing text only", zap.Error(err))
		return html, eyecatchURL
	}

	for _, img := range images {
		name := img.Name
		if name == "" {
			name = uuid.NewString()
		}
		url, err := p.uploader.UploadMedia(ctx, img.Data, img.ContentType, name)
		if err != nil {
			p.log.Warn("embedded image upload failed, skipping",
				zap.String("name", name), zap.Error(err))
			continue
		}
		html += fmt.Sprintf("\n<img src=%q alt=%q>", url, name)
		if eyecatchURL == "" {
			eyecatchURL = url
		}
	}
	return html, eyecatchURL
}

// printRecord writes the assembled record as YAML, the dry-run output.
func (p *Publisher) printRecord(rec cms.PublishRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if _, err := p.out.Write(data); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}
