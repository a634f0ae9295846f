// Package vision implements the visual document classifier. It sends the
// most representative preview page to a vision model and parses the
// free-text response into structured domain hints via lexicon heuristics.
//
// This stage is non-critical by contract: Classify always returns a usable
// Result, degrading to a zero-confidence placeholder on any backend failure.
package vision

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/dossier-ai/dossier/internal/catalog"
	"github.com/dossier-ai/dossier/internal/prompts"
)

// Result is the structured outcome of visual analysis.
type Result struct {
	DomainHints  []catalog.Domain `json:"domain_hints"`
	DocumentType string           `json:"document_type"`
	HasTables    bool             `json:"has_tables"`
	HasCharts    bool             `json:"has_charts"`
	Layout       string           `json:"layout"`
	Confidence   float64          `json:"confidence"`
	RawAnalysis  string           `json:"raw_analysis,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// Degraded reports whether this result is a failure placeholder.
func (r *Result) Degraded() bool {
	return r.Error != ""
}

// Backend sends one encoded page image to a vision model and returns the
// raw response text.
type Backend interface {
	AnalyzeImage(ctx context.Context, image, prompt string) (string, error)
}

// Classifier analyzes document preview images.
type Classifier struct {
	backend Backend
	logger  *slog.Logger
}

// New creates a vision classifier over the given backend.
func New(backend Backend, logger *slog.Logger) *Classifier {
	return &Classifier{
		backend: backend,
		logger:  logger.With("system", "vision"),
	}
}

// Classify analyzes the first preview image (the most representative page;
// one call per document keeps vision cost bounded). An empty image set
// yields the placeholder immediately without a backend call. Backend
// failures are captured into the placeholder with the error noted;
// Classify never fails its caller.
func (c *Classifier) Classify(ctx context.Context, images []string, filename string) Result {
	if len(images) == 0 {
		c.logger.Warn("no preview images available", "filename", filename)
		return placeholder("")
	}

	raw, err := c.backend.AnalyzeImage(ctx, images[0], prompts.ComposeVision(filename))
	if err != nil {
		c.logger.Error("vision analysis failed", "filename", filename, "error", err)
		r := placeholder(err.Error())
		r.Layout = LayoutTextHeavy
		return r
	}

	result := ParseResponse(raw)
	c.logger.Info(
		"vision analysis complete",
		"filename", filename,
		"hints", result.DomainHints,
		"confidence", result.Confidence,
	)
	return result
}

func placeholder(errMsg string) Result {
	return Result{
		DomainHints:  []catalog.Domain{},
		DocumentType: "unknown",
		Layout:       LayoutUnknown,
		Confidence:   0.0,
		Error:        errMsg,
	}
}

type agentBackend struct {
	cfg gaconfig.AgentConfig
}

// NewAgentBackend creates a Backend that performs vision inference through
// a go-agents agent. A fresh agent is constructed per call so concurrent
// pipeline runs never share transport state.
func NewAgentBackend(cfg gaconfig.AgentConfig) Backend {
	return &agentBackend{cfg: cfg}
}

func (b *agentBackend) AnalyzeImage(ctx context.Context, image, prompt string) (string, error) {
	a, err := agent.New(&b.cfg)
	if err != nil {
		return "", err
	}

	resp, err := a.Vision(ctx, prompt, []string{image})
	if err != nil {
		return "", err
	}

	return resp.Content(), nil
}
