package textclass

import (
	"fmt"
	"strings"

	"github.com/dossier-ai/dossier/internal/catalog"
)

// fallbackConfidenceCap bounds keyword-derived confidence. Keyword matching
// is coarser evidence than model inference and never reports certainty.
const fallbackConfidenceCap = 0.85

// noMatchConfidence is assigned when no domain keyword occurs in the text.
const noMatchConfidence = 0.3

const maxMatchedKeywords = 10

const maxAlternatives = 2

// ClassifyKeywords scores the text against every scored domain's keyword
// list and returns the best match. The function is pure and deterministic:
// identical text always yields an identical result. Ties between equal
// scores resolve by catalog declaration order.
func ClassifyKeywords(text string) Result {
	lower := strings.ToLower(text)

	scored := catalog.Scored()
	scores := make(map[catalog.Domain]int, len(scored))
	total := 0

	for _, d := range scored {
		count := 0
		for _, kw := range catalog.Keywords(d) {
			if strings.Contains(lower, strings.ToLower(kw)) {
				count++
			}
		}
		scores[d] = count
		total += count
	}

	best := catalog.General
	bestScore := 0
	for _, d := range scored {
		if scores[d] > bestScore {
			best = d
			bestScore = scores[d]
		}
	}

	if bestScore == 0 {
		return Result{
			PrimaryDomain:      catalog.General,
			Confidence:         noMatchConfidence,
			Reasoning:          "Keyword fallback: no domain keywords matched",
			Keywords:           []string{},
			AlternativeDomains: []catalog.Domain{},
			Method:             MethodKeywordFallback,
		}
	}

	confidence := float64(bestScore) / float64(total)
	if confidence > fallbackConfidenceCap {
		confidence = fallbackConfidenceCap
	}

	return Result{
		PrimaryDomain:      best,
		Confidence:         catalog.Clamp(confidence),
		Reasoning:          fmt.Sprintf("Keyword fallback: matched %d %s terms", bestScore, best),
		Keywords:           matchedKeywords(lower, best),
		AlternativeDomains: alternatives(scores, best),
		Method:             MethodKeywordFallback,
	}
}

// matchedKeywords collects the winning domain's keywords present in the
// text, in catalog declaration order, capped at maxMatchedKeywords.
func matchedKeywords(lower string, d catalog.Domain) []string {
	matched := make([]string, 0, maxMatchedKeywords)
	for _, kw := range catalog.Keywords(d) {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			continue
		}
		matched = append(matched, kw)
		if len(matched) == maxMatchedKeywords {
			break
		}
	}
	return matched
}

// alternatives returns the second- and third-ranked domains regardless of
// score, preserving catalog order among equal scores.
func alternatives(scores map[catalog.Domain]int, best catalog.Domain) []catalog.Domain {
	alts := make([]catalog.Domain, 0, maxAlternatives)

	remaining := make([]catalog.Domain, 0, len(scores))
	for _, d := range catalog.Scored() {
		if d != best {
			remaining = append(remaining, d)
		}
	}

	for len(alts) < maxAlternatives && len(remaining) > 0 {
		next := remaining[0]
		idx := 0
		for i, d := range remaining[1:] {
			if scores[d] > scores[next] {
				next = d
				idx = i + 1
			}
		}
		alts = append(alts, next)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	return alts
}
