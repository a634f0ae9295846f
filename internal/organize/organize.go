// Package organize files classified documents into per-domain folders under
// a managed output root. Destination names are collision-safe: an occupied
// name gets a numeric suffix rather than being overwritten.
package organize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dossier-ai/dossier/internal/catalog"
)

// Placement modes.
const (
	ModeCopy = "copy"
	ModeMove = "move"
)

// Request describes one document to file. An empty Mode copies.
type Request struct {
	Source   string         `json:"source"`
	Filename string         `json:"filename"`
	Domain   catalog.Domain `json:"domain"`
	Mode     string         `json:"mode"`
}

// Placement is the outcome of filing one document.
type Placement struct {
	Success     bool   `json:"success"`
	Destination string `json:"destination,omitempty"`
	Error       string `json:"error,omitempty"`
}

// System manages the organized output tree.
type System interface {
	// EnsureFolder creates the domain's folder if absent and returns its path.
	EnsureFolder(domain catalog.Domain) (string, error)
	// Place files the document into its domain folder. Failures are reported
	// in the Placement rather than as an error so callers can record them.
	Place(ctx context.Context, req Request) Placement
}

type system struct {
	root   string
	logger *slog.Logger
}

// New creates a filing system rooted at the given output directory.
func New(root string, logger *slog.Logger) System {
	return &system{
		root:   root,
		logger: logger.With("system", "organize"),
	}
}

func (s *system) EnsureFolder(domain catalog.Domain) (string, error) {
	dir := filepath.Join(s.root, string(domain))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFolderCreate, domain, err)
	}
	return dir, nil
}

func (s *system) Place(ctx context.Context, req Request) Placement {
	if err := ctx.Err(); err != nil {
		return failure(err)
	}

	dir, err := s.EnsureFolder(req.Domain)
	if err != nil {
		s.logger.Error("folder creation failed", "domain", req.Domain, "error", err)
		return failure(err)
	}

	dest := availableName(dir, req.Filename)

	switch req.Mode {
	case ModeMove:
		err = moveFile(req.Source, dest)
	case ModeCopy, "":
		err = copyFile(req.Source, dest)
	default:
		err = fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}
	if err != nil {
		s.logger.Error(
			"placement failed",
			"source", req.Source,
			"destination", dest,
			"error", err,
		)
		return failure(err)
	}

	s.logger.Info(
		"document filed",
		"domain", req.Domain,
		"destination", dest,
		"mode", req.Mode,
	)
	return Placement{Success: true, Destination: dest}
}

func failure(err error) Placement {
	return Placement{Success: false, Error: err.Error()}
}

// availableName returns the first unoccupied destination path for filename
// within dir, suffixing the stem with an incrementing counter on collision.
func availableName(dir, filename string) string {
	dest := filepath.Join(dir, filename)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// moveFile renames when possible and falls back to copy-then-remove so
// moves work across filesystem boundaries.
func moveFile(source, dest string) error {
	if err := os.Rename(source, dest); err == nil {
		return nil
	}

	if err := copyFile(source, dest); err != nil {
		return err
	}
	return os.Remove(source)
}

func copyFile(source, dest string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}
