package vision

import (
	"strings"

	"github.com/dossier-ai/dossier/internal/catalog"
)

// Layout tags assigned by the response parser.
const (
	LayoutVisualHeavy = "visual-heavy"
	LayoutTextHeavy   = "text-heavy"
	LayoutMixed       = "mixed"
	LayoutUnknown     = "unknown"
)

const maxDomainHints = 3

// rawPreviewLimit bounds how much of the model response is retained for
// inspection alongside the parsed result.
const rawPreviewLimit = 500

// hintConfidenceStep is the confidence contributed by each detected domain
// hint. A response touching four or more domains saturates at 1.0.
const hintConfidenceStep = 0.25

// ParseResponse converts a vision model's free-text response into a
// structured Result using fixed lexicon matching. The heuristics are
// deterministic: identical response text always parses identically.
func ParseResponse(raw string) Result {
	lower := strings.ToLower(raw)

	hints, hitCount := detectHints(lower)
	hasTables := containsAny(lower, catalog.TableWords())
	hasCharts := containsAny(lower, catalog.ChartWords())

	return Result{
		DomainHints:  hints,
		DocumentType: detectDocType(lower),
		HasTables:    hasTables,
		HasCharts:    hasCharts,
		Layout:       detectLayout(lower, hasTables, hasCharts),
		Confidence:   catalog.Clamp(float64(hitCount) * hintConfidenceStep),
		RawAnalysis:  truncate(raw, rawPreviewLimit),
	}
}

// detectHints scans the response for each hint domain's trigger words.
// Catalog declaration order is the tie-break: earlier domains claim the
// limited hint slots first. The full hit count feeds the confidence
// estimate even when it exceeds the hint cap.
func detectHints(lower string) ([]catalog.Domain, int) {
	hints := make([]catalog.Domain, 0, maxDomainHints)
	hits := 0

	for _, d := range catalog.HintDomains() {
		if !containsAny(lower, catalog.HintTriggers(d)) {
			continue
		}
		hits++
		if len(hints) < maxDomainHints {
			hints = append(hints, d)
		}
	}

	return hints, hits
}

func detectLayout(lower string, hasTables, hasCharts bool) string {
	switch {
	case hasTables || hasCharts:
		return LayoutVisualHeavy
	case strings.Contains(lower, "text") && strings.Contains(lower, "heavy"):
		return LayoutTextHeavy
	default:
		return LayoutMixed
	}
}

// detectDocType searches the ordered document-type table and returns the
// first tag whose trigger phrase occurs in the response.
func detectDocType(lower string) string {
	for _, dt := range catalog.DocTypes() {
		if containsAny(lower, dt.Triggers) {
			return dt.Tag
		}
	}
	return catalog.DefaultDocType
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
