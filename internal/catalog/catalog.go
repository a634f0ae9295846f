// Package catalog defines the closed-world domain taxonomy shared by every
// classification stage. The keyword fallback and all prompt construction read
// from the same tables so deterministic and LLM-guided classification never
// disagree about which domains exist.
package catalog

import (
	"encoding/json"
	"slices"
)

// Domain is a subject-matter category assigned to a document.
type Domain string

// The fixed domain set. Declaration order is significant: it is the stable
// tie-break for keyword scoring and the iteration order for prompt text.
const (
	Finance     Domain = "finance"
	Law         Domain = "law"
	Science     Domain = "science"
	Technology  Domain = "technology"
	Healthcare  Domain = "healthcare"
	Education   Domain = "education"
	Business    Domain = "business"
	Engineering Domain = "engineering"
	Arts        Domain = "arts"
	General     Domain = "general"
)

var domains = []Domain{
	Finance,
	Law,
	Science,
	Technology,
	Healthcare,
	Education,
	Business,
	Engineering,
	Arts,
	General,
}

// scored lists the domains that carry keyword tables. General is the
// catch-all and is deliberately absent: it wins only when nothing scores.
var scored = domains[:len(domains)-1]

// Domains returns all valid domains in declaration order, General last.
func Domains() []Domain {
	return domains
}

// Scored returns the domains that participate in keyword scoring,
// in declaration order.
func Scored() []Domain {
	return scored
}

// Valid reports whether d is a member of the closed domain set.
func Valid(d Domain) bool {
	return slices.Contains(domains, d)
}

// Coerce maps an arbitrary tag onto the closed domain set.
// Unrecognized tags become General.
func Coerce(raw string) Domain {
	d := Domain(raw)
	if !Valid(d) {
		return General
	}
	return d
}

// Clamp bounds a confidence value to [0, 1].
func Clamp(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// UnmarshalJSON validates that the decoded string is a known domain value.
func (d *Domain) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Domain(raw)
	if !Valid(v) {
		return ErrInvalidDomain
	}
	*d = v
	return nil
}

// ParseDomain validates a string as a known domain.
// Returns ErrInvalidDomain if the value is not recognized.
func ParseDomain(s string) (Domain, error) {
	v := Domain(s)
	if !Valid(v) {
		return "", ErrInvalidDomain
	}
	return v, nil
}
