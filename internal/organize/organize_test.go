package organize_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dossier-ai/dossier/internal/catalog"
	"github.com/dossier-ai/dossier/internal/organize"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing source file: %v", err)
	}
	return path
}

func TestEnsureFolder(t *testing.T) {
	root := t.TempDir()
	s := organize.New(root, discard())

	dir, err := s.EnsureFolder(catalog.Finance)
	if err != nil {
		t.Fatalf("EnsureFolder: %v", err)
	}
	if dir != filepath.Join(root, "finance") {
		t.Errorf("unexpected folder path: %s", dir)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("expected directory at %s", dir)
	}

	// Idempotent on an existing folder.
	if _, err := s.EnsureFolder(catalog.Finance); err != nil {
		t.Errorf("EnsureFolder second call: %v", err)
	}
}

func TestPlaceCopy(t *testing.T) {
	root := t.TempDir()
	src := t.TempDir()
	s := organize.New(root, discard())

	source := writeSource(t, src, "report.pdf", "content")

	p := s.Place(context.Background(), organize.Request{
		Source:   source,
		Filename: "report.pdf",
		Domain:   catalog.Finance,
		Mode:     organize.ModeCopy,
	})

	if !p.Success {
		t.Fatalf("placement failed: %s", p.Error)
	}
	if p.Destination != filepath.Join(root, "finance", "report.pdf") {
		t.Errorf("unexpected destination: %s", p.Destination)
	}

	data, err := os.ReadFile(p.Destination)
	if err != nil || string(data) != "content" {
		t.Errorf("destination content mismatch: %q, %v", data, err)
	}
	if _, err := os.Stat(source); err != nil {
		t.Errorf("copy must leave the source in place: %v", err)
	}
}

func TestPlaceMove(t *testing.T) {
	root := t.TempDir()
	src := t.TempDir()
	s := organize.New(root, discard())

	source := writeSource(t, src, "brief.pdf", "content")

	p := s.Place(context.Background(), organize.Request{
		Source:   source,
		Filename: "brief.pdf",
		Domain:   catalog.Law,
		Mode:     organize.ModeMove,
	})

	if !p.Success {
		t.Fatalf("placement failed: %s", p.Error)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Errorf("move must remove the source, got %v", err)
	}
	if _, err := os.Stat(p.Destination); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}

func TestPlaceCollisionNaming(t *testing.T) {
	root := t.TempDir()
	src := t.TempDir()
	s := organize.New(root, discard())

	want := []string{
		filepath.Join(root, "science", "paper.pdf"),
		filepath.Join(root, "science", "paper_1.pdf"),
		filepath.Join(root, "science", "paper_2.pdf"),
	}

	for i, expected := range want {
		source := writeSource(t, src, "paper.pdf", "content")
		p := s.Place(context.Background(), organize.Request{
			Source:   source,
			Filename: "paper.pdf",
			Domain:   catalog.Science,
			Mode:     organize.ModeMove,
		})
		if !p.Success {
			t.Fatalf("placement %d failed: %s", i, p.Error)
		}
		if p.Destination != expected {
			t.Errorf("placement %d: expected %s, got %s", i, expected, p.Destination)
		}
	}

	entries, err := os.ReadDir(filepath.Join(root, "science"))
	if err != nil {
		t.Fatalf("reading domain folder: %v", err)
	}
	if len(entries) != len(want) {
		t.Errorf("expected %d files, got %d", len(want), len(entries))
	}
}

func TestPlaceMissingSource(t *testing.T) {
	root := t.TempDir()
	s := organize.New(root, discard())

	p := s.Place(context.Background(), organize.Request{
		Source:   filepath.Join(root, "nope.pdf"),
		Filename: "nope.pdf",
		Domain:   catalog.General,
		Mode:     organize.ModeCopy,
	})

	if p.Success {
		t.Error("placement of a missing source must fail")
	}
	if p.Error == "" {
		t.Error("failed placement must carry an error message")
	}
}

func TestPlaceInvalidMode(t *testing.T) {
	root := t.TempDir()
	src := t.TempDir()
	s := organize.New(root, discard())

	source := writeSource(t, src, "doc.pdf", "content")

	p := s.Place(context.Background(), organize.Request{
		Source:   source,
		Filename: "doc.pdf",
		Domain:   catalog.General,
		Mode:     "link",
	})

	if p.Success {
		t.Error("invalid mode must fail")
	}
}

func TestPlaceDefaultModeCopies(t *testing.T) {
	root := t.TempDir()
	src := t.TempDir()
	s := organize.New(root, discard())

	source := writeSource(t, src, "memo.pdf", "content")

	p := s.Place(context.Background(), organize.Request{
		Source:   source,
		Filename: "memo.pdf",
		Domain:   catalog.Business,
	})

	if !p.Success {
		t.Fatalf("placement failed: %s", p.Error)
	}
	if _, err := os.Stat(source); err != nil {
		t.Error("default mode must leave the source in place")
	}
}
