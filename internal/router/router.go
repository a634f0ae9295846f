// Package router reconciles the two classifier analyses into one final
// domain decision through three tiers: a quick-agreement check that avoids
// any model call, LLM arbitration when the analyses diverge, and a
// deterministic weighted vote when arbitration is unavailable.
//
// Routing never fails its caller. The weighted fallback always produces a
// decision, so every document that reaches this stage gets filed somewhere.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/dossier-ai/dossier/internal/catalog"
	"github.com/dossier-ai/dossier/internal/prompts"
	"github.com/dossier-ai/dossier/internal/textclass"
	"github.com/dossier-ai/dossier/internal/vision"
	"github.com/dossier-ai/dossier/pkg/formatting"
)

// Decision methods recorded on results.
const (
	MethodQuickAgreement   = "quick_agreement"
	MethodArbitrated       = "arbitrated"
	MethodFallbackWeighted = "fallback_weighted"
)

// Agreement levels between the two analyses.
const (
	AgreementHigh   = "high"
	AgreementMedium = "medium"
	AgreementLow    = "low"
	AgreementNone   = "none"
)

// quickAgreementThreshold is the text confidence required, together with a
// matching vision hint, to accept the text domain without arbitration.
const quickAgreementThreshold = 0.7

// Weighted-fallback parameters. Discounts reflect that a lone analysis is
// weaker evidence than two concurring ones.
const (
	textFallbackThreshold = 0.6
	textDiscount          = 0.8
	visionDiscount        = 0.7
	unknownConfidence     = 0.4
)

// Decision is the reconciled classification for a document.
type Decision struct {
	FinalDomain     catalog.Domain `json:"final_domain"`
	Confidence      float64        `json:"confidence"`
	Reasoning       string         `json:"reasoning"`
	AgreementLevel  string         `json:"agreement_level"`
	Method          string         `json:"method"`
	PrimaryEvidence string         `json:"primary_evidence,omitempty"`
}

// Arbiter resolves a divergence between the two analyses and returns the
// raw model response text.
type Arbiter interface {
	Arbitrate(ctx context.Context, prompt string) (string, error)
}

// Router makes final domain decisions.
type Router struct {
	arbiter Arbiter
	logger  *slog.Logger
}

// New creates a router over the given arbiter.
func New(arbiter Arbiter, logger *slog.Logger) *Router {
	return &Router{
		arbiter: arbiter,
		logger:  logger.With("system", "router"),
	}
}

// arbitrateResponse is the JSON shape the arbiter is instructed to return.
type arbitrateResponse struct {
	FinalDomain     string  `json:"final_domain"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning"`
	AgreementLevel  string  `json:"agreement_level"`
	PrimaryEvidence string  `json:"primary_evidence"`
}

// Route reconciles the two analyses into a final decision. The tiers apply
// in order: quick agreement short-circuits without an arbiter call, LLM
// arbitration handles divergence, and the deterministic weighted vote
// covers arbitration failure. Route never fails its caller.
func (r *Router) Route(ctx context.Context, visionResult vision.Result, textResult textclass.Result, filename string) Decision {
	if d, ok := r.quickAgreement(visionResult, textResult); ok {
		r.logger.Info(
			"quick agreement",
			"filename", filename,
			"domain", d.FinalDomain,
			"confidence", d.Confidence,
		)
		return d
	}

	d, err := r.arbitrate(ctx, visionResult, textResult, filename)
	if err != nil {
		r.logger.Error(
			"arbitration failed, using weighted fallback",
			"filename", filename,
			"error", err,
		)
		d = weightedFallback(visionResult, textResult)
	}

	r.logger.Info(
		"routing decision",
		"filename", filename,
		"domain", d.FinalDomain,
		"method", d.Method,
		"agreement", d.AgreementLevel,
	)
	return d
}

// quickAgreement accepts the text domain outright when it appears among the
// vision hints and the text classifier is confident. The decision confidence
// is the mean of both analyses.
func (r *Router) quickAgreement(visionResult vision.Result, textResult textclass.Result) (Decision, bool) {
	if textResult.Confidence <= quickAgreementThreshold {
		return Decision{}, false
	}
	if !slices.Contains(visionResult.DomainHints, textResult.PrimaryDomain) {
		return Decision{}, false
	}

	return Decision{
		FinalDomain:    textResult.PrimaryDomain,
		Confidence:     catalog.Clamp((textResult.Confidence + visionResult.Confidence) / 2),
		Reasoning:      fmt.Sprintf("Both analyses agree on %s", textResult.PrimaryDomain),
		AgreementLevel: AgreementHigh,
		Method:         MethodQuickAgreement,
	}, true
}

func (r *Router) arbitrate(ctx context.Context, visionResult vision.Result, textResult textclass.Result, filename string) (Decision, error) {
	hints := make([]string, 0, len(visionResult.DomainHints))
	for _, h := range visionResult.DomainHints {
		hints = append(hints, string(h))
	}

	prompt := prompts.ComposeArbitration(prompts.ArbitrationContext{
		Filename:         filename,
		VisionDomains:    hints,
		DocType:          visionResult.DocumentType,
		HasTables:        visionResult.HasTables,
		HasCharts:        visionResult.HasCharts,
		VisionConfidence: visionResult.Confidence,
		TextDomain:       string(textResult.PrimaryDomain),
		TextConfidence:   textResult.Confidence,
		Keywords:         textResult.Keywords,
		TextReasoning:    textResult.Reasoning,
	})

	raw, err := r.arbiter.Arbitrate(ctx, prompt)
	if err != nil {
		return Decision{}, err
	}

	parsed, err := formatting.Parse[arbitrateResponse](raw)
	if err != nil {
		return Decision{}, err
	}

	return Decision{
		FinalDomain:     catalog.Coerce(parsed.FinalDomain),
		Confidence:      catalog.Clamp(parsed.Confidence),
		Reasoning:       parsed.Reasoning,
		AgreementLevel:  coerceAgreement(parsed.AgreementLevel),
		Method:          MethodArbitrated,
		PrimaryEvidence: parsed.PrimaryEvidence,
	}, nil
}

func coerceAgreement(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case AgreementHigh:
		return AgreementHigh
	case AgreementMedium:
		return AgreementMedium
	case AgreementLow:
		return AgreementLow
	default:
		return AgreementLow
	}
}

// weightedFallback is the deterministic last tier. A reasonably confident
// text result wins at a discount, then the leading vision hint at a deeper
// discount, then general. Identical inputs always yield identical output.
func weightedFallback(visionResult vision.Result, textResult textclass.Result) Decision {
	switch {
	case textResult.Confidence > textFallbackThreshold:
		agreement := AgreementLow
		if slices.Contains(visionResult.DomainHints, textResult.PrimaryDomain) {
			agreement = AgreementMedium
		}
		return Decision{
			FinalDomain:    textResult.PrimaryDomain,
			Confidence:     catalog.Clamp(textResult.Confidence * textDiscount),
			Reasoning:      fmt.Sprintf("Weighted vote: text analysis selected %s", textResult.PrimaryDomain),
			AgreementLevel: agreement,
			Method:         MethodFallbackWeighted,
		}
	case len(visionResult.DomainHints) > 0:
		return Decision{
			FinalDomain:    visionResult.DomainHints[0],
			Confidence:     catalog.Clamp(visionResult.Confidence * visionDiscount),
			Reasoning:      fmt.Sprintf("Weighted vote: vision hint selected %s", visionResult.DomainHints[0]),
			AgreementLevel: AgreementLow,
			Method:         MethodFallbackWeighted,
		}
	default:
		return Decision{
			FinalDomain:    catalog.General,
			Confidence:     unknownConfidence,
			Reasoning:      "Weighted vote: no analysis produced a usable signal",
			AgreementLevel: AgreementNone,
			Method:         MethodFallbackWeighted,
		}
	}
}

type agentArbiter struct {
	cfg gaconfig.AgentConfig
}

// NewAgentArbiter creates an Arbiter backed by a go-agents chat agent,
// constructed per call.
func NewAgentArbiter(cfg gaconfig.AgentConfig) Arbiter {
	return &agentArbiter{cfg: cfg}
}

func (b *agentArbiter) Arbitrate(ctx context.Context, prompt string) (string, error) {
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
