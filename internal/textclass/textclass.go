// Package textclass implements the text document classifier: an LLM-backed
// primary method with a fully deterministic keyword-scoring fallback.
//
// This stage never fails its caller. Any primary-method failure, including
// unusable text, resolves through the offline fallback so the pipeline's
// classifier join always completes.
package textclass

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/dossier-ai/dossier/internal/catalog"
	"github.com/dossier-ai/dossier/internal/prompts"
	"github.com/dossier-ai/dossier/pkg/formatting"
)

// Classification methods recorded on results.
const (
	MethodLLM             = "llm"
	MethodKeywordFallback = "keyword_fallback"
)

// minTextLength is the trimmed-text threshold below which the primary
// method is skipped entirely in favor of the fallback.
const minTextLength = 50

// textSampleLimit bounds how much text is sent to the primary backend.
const textSampleLimit = 8000

// Result is the structured outcome of text classification.
type Result struct {
	PrimaryDomain      catalog.Domain   `json:"primary_domain"`
	Confidence         float64          `json:"confidence"`
	Reasoning          string           `json:"reasoning"`
	Keywords           []string         `json:"keywords"`
	AlternativeDomains []catalog.Domain `json:"alternative_domains"`
	Method             string           `json:"method"`
}

// Fallback reports whether the deterministic method produced this result.
func (r *Result) Fallback() bool {
	return r.Method == MethodKeywordFallback
}

// Backend performs the primary (LLM-based) classification call and returns
// the raw response text.
type Backend interface {
	ClassifyText(ctx context.Context, prompt string) (string, error)
}

// Classifier classifies documents from their extracted text.
type Classifier struct {
	backend Backend
	logger  *slog.Logger
}

// New creates a text classifier over the given backend.
func New(backend Backend, logger *slog.Logger) *Classifier {
	return &Classifier{
		backend: backend,
		logger:  logger.With("system", "textclass"),
	}
}

// textResponse is the JSON shape the primary backend is instructed to return.
type textResponse struct {
	PrimaryDomain      string   `json:"primary_domain"`
	Confidence         float64  `json:"confidence"`
	Reasoning          string   `json:"reasoning"`
	Keywords           []string `json:"keywords"`
	AlternativeDomains []string `json:"alternative_domains"`
}

// Classify determines the document's domain from its text. Text shorter
// than minTextLength after trimming skips the primary method; any primary
// failure falls back to deterministic keyword scoring. Classify never
// fails its caller.
func (c *Classifier) Classify(ctx context.Context, text, filename string) Result {
	if len(strings.TrimSpace(text)) < minTextLength {
		c.logger.Warn("insufficient text content", "filename", filename)
		return ClassifyKeywords(text)
	}

	sample := text
	if len(sample) > textSampleLimit {
		cut := textSampleLimit
		for cut > 0 && !utf8.RuneStart(sample[cut]) {
			cut--
		}
		sample = sample[:cut]
	}

	result, err := c.classifyPrimary(ctx, sample, filename)
	if err != nil {
		c.logger.Error(
			"primary classification failed, using keyword fallback",
			"filename", filename,
			"error", err,
		)
		return ClassifyKeywords(text)
	}

	c.logger.Info(
		"text classification complete",
		"filename", filename,
		"domain", result.PrimaryDomain,
		"confidence", result.Confidence,
	)
	return result
}

func (c *Classifier) classifyPrimary(ctx context.Context, sample, filename string) (Result, error) {
	raw, err := c.backend.ClassifyText(ctx, prompts.ComposeText(filename, sample))
	if err != nil {
		return Result{}, err
	}

	parsed, err := formatting.Parse[textResponse](raw)
	if err != nil {
		return Result{}, err
	}

	alternatives := make([]catalog.Domain, 0, len(parsed.AlternativeDomains))
	for _, alt := range parsed.AlternativeDomains {
		alternatives = append(alternatives, catalog.Coerce(alt))
	}

	keywords := parsed.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return Result{
		PrimaryDomain:      catalog.Coerce(parsed.PrimaryDomain),
		Confidence:         catalog.Clamp(parsed.Confidence),
		Reasoning:          parsed.Reasoning,
		Keywords:           keywords,
		AlternativeDomains: alternatives,
		Method:             MethodLLM,
	}, nil
}

type agentBackend struct {
	cfg gaconfig.AgentConfig
}

// NewAgentBackend creates a Backend that performs classification through a
// go-agents chat agent, constructed per call.
func NewAgentBackend(cfg gaconfig.AgentConfig) Backend {
	return &agentBackend{cfg: cfg}
}

func (b *agentBackend) ClassifyText(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&b.cfg)
	if err != nil {
		return "", err
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", err
	}

	return resp.Content(), nil
}
