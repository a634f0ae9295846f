// Package intake extracts classification inputs from source PDFs: document
// metadata, plain text, a bounded preview, and rendered page images encoded
// as data URIs.
//
// Only an unreadable source file is fatal. Text extraction, metadata reads,
// and page rendering are best-effort: each failure degrades its own field
// and the remaining stages work with whatever survived.
package intake

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	dcconfig "github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"
	"github.com/JaimeStill/document-context/pkg/image"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"

	"github.com/dossier-ai/dossier/pkg/formatting"
)

// Defaults for extraction bounds.
const (
	DefaultPreviewLimit = 2000
	DefaultMaxImages    = 3
)

// Metadata describes the source document.
type Metadata struct {
	PageCount int     `json:"page_count"`
	SizeBytes int64   `json:"size_bytes"`
	SizeMB    float64 `json:"size_mb"`
	Title     string  `json:"title,omitempty"`
	Author    string  `json:"author,omitempty"`
}

// Extraction carries everything the classifiers need from one document.
type Extraction struct {
	Metadata Metadata `json:"metadata"`
	Text     string   `json:"-"`
	Preview  string   `json:"preview,omitempty"`
	Images   []string `json:"-"`
}

// Options bound how much material extraction produces.
type Options struct {
	PreviewLimit int
	MaxImages    int
}

// DefaultOptions returns the standard extraction bounds.
func DefaultOptions() Options {
	return Options{
		PreviewLimit: DefaultPreviewLimit,
		MaxImages:    DefaultMaxImages,
	}
}

// Extractor pulls classification inputs out of PDF files.
type Extractor struct {
	opts   Options
	logger *slog.Logger
}

// New creates an extractor with the given bounds. Zero or negative bounds
// fall back to the defaults.
func New(opts Options, logger *slog.Logger) *Extractor {
	if opts.PreviewLimit <= 0 {
		opts.PreviewLimit = DefaultPreviewLimit
	}
	if opts.MaxImages <= 0 {
		opts.MaxImages = DefaultMaxImages
	}
	return &Extractor{
		opts:   opts,
		logger: logger.With("system", "intake"),
	}
}

// Extract reads the source document and produces its classification inputs.
// A missing file returns ErrSourceMissing and an unreadable one
// ErrUnreadable; every other failure degrades only its own field.
func (e *Extractor) Extract(ctx context.Context, path string) (*Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	ext := &Extraction{
		Metadata: Metadata{
			SizeBytes: int64(len(data)),
			SizeMB:    formatting.BytesToMB(int64(len(data))),
		},
	}

	if count, err := api.PageCount(bytes.NewReader(data), nil); err != nil {
		e.logger.Warn("page count unavailable", "path", path, "error", err)
	} else {
		ext.Metadata.PageCount = count
	}

	text, title, author, err := extractText(data)
	if err != nil {
		e.logger.Warn("text extraction failed", "path", path, "error", err)
	}
	ext.Text = text
	ext.Metadata.Title = title
	ext.Metadata.Author = author
	ext.Preview = preview(text, e.opts.PreviewLimit)

	images, err := e.renderImages(ctx, path)
	if err != nil {
		e.logger.Warn("page rendering failed", "path", path, "error", err)
	}
	ext.Images = images

	e.logger.Info(
		"extraction complete",
		"path", path,
		"pages", ext.Metadata.PageCount,
		"text_length", len(ext.Text),
		"images", len(ext.Images),
	)
	return ext, nil
}

// extractText pulls plain text and Info-dictionary metadata from the PDF.
// The parser panics on some malformed files, so the whole read runs under
// a recover guard and degrades to empty output.
func extractText(data []byte) (text, title, author string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, title, author = "", "", ""
			err = fmt.Errorf("%w: %v", ErrTextExtraction, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %v", ErrTextExtraction, err)
	}

	info := r.Trailer().Key("Info")
	title = info.Key("Title").RawString()
	author = info.Key("Author").RawString()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String()), title, author, nil
}

// renderImages rasterizes the leading pages to PNG data URIs with bounded
// concurrency. Order is preserved so the first image is always page one.
func (e *Extractor) renderImages(ctx context.Context, path string) ([]string, error) {
	pdfDoc, err := document.OpenPDF(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %v", ErrRenderFailed, err)
	}
	defer pdfDoc.Close()

	renderer, err := image.NewImageMagickRenderer(dcconfig.DefaultImageConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: create renderer: %v", ErrRenderFailed, err)
	}

	allPages, err := pdfDoc.ExtractAllPages()
	if err != nil {
		return nil, fmt.Errorf("%w: extract pages: %v", ErrRenderFailed, err)
	}

	if len(allPages) > e.opts.MaxImages {
		allPages = allPages[:e.opts.MaxImages]
	}

	images := make([]string, len(allPages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renderWorkerCount(len(allPages)))

	for i, page := range allPages {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			data, err := page.ToImage(renderer, nil)
			if err != nil {
				return fmt.Errorf("render page %d: %w", i+1, err)
			}

			dataURI, err := encoding.EncodeImageDataURI(data, document.PNG)
			if err != nil {
				return fmt.Errorf("encode page %d: %w", i+1, err)
			}

			images[i] = dataURI
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return images, nil
}

func preview(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}

func renderWorkerCount(pageCount int) int {
	return max(min(runtime.NumCPU(), pageCount), 1)
}
