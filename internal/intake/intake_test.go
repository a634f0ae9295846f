package intake

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestExtractMissingSource(t *testing.T) {
	e := New(DefaultOptions(), discard())

	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	if !errors.Is(err, ErrSourceMissing) {
		t.Errorf("expected ErrSourceMissing, got %v", err)
	}
}

func TestExtractMalformedSourceDegrades(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	e := New(DefaultOptions(), discard())
	ext, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("a readable but malformed file must not be fatal: %v", err)
	}

	if ext.Metadata.SizeBytes != int64(len("this is not a pdf")) {
		t.Errorf("unexpected size: %d", ext.Metadata.SizeBytes)
	}
	if ext.Text != "" {
		t.Errorf("expected empty text for malformed source, got %q", ext.Text)
	}
	if len(ext.Images) != 0 {
		t.Errorf("expected no images for malformed source, got %d", len(ext.Images))
	}
}

func TestNewAppliesDefaultBounds(t *testing.T) {
	e := New(Options{}, discard())

	if e.opts.PreviewLimit != DefaultPreviewLimit {
		t.Errorf("expected preview limit %d, got %d", DefaultPreviewLimit, e.opts.PreviewLimit)
	}
	if e.opts.MaxImages != DefaultMaxImages {
		t.Errorf("expected max images %d, got %d", DefaultMaxImages, e.opts.MaxImages)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{"short text unchanged", "brief", 10, "brief"},
		{"exact limit unchanged", "12345", 5, "12345"},
		{"long text truncated", strings.Repeat("a", 20), 5, "aaaaa"},
		{"empty text", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preview(tt.text, tt.limit); got != tt.want {
				t.Errorf("preview(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
		})
	}
}

func TestRenderWorkerCount(t *testing.T) {
	if got := renderWorkerCount(0); got != 1 {
		t.Errorf("zero pages should still get one worker, got %d", got)
	}
	if got := renderWorkerCount(1); got != 1 {
		t.Errorf("one page should get one worker, got %d", got)
	}
}
