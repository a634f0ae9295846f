package prompts

import (
	"fmt"
	"strings"

	"github.com/dossier-ai/dossier/internal/catalog"
)

// CatalogSection renders the scored domains with their leading keywords as
// prompt text. Both the text classifier and the arbiter use this section so
// every prompt agrees with the keyword fallback about which domains exist.
func CatalogSection() string {
	var sb strings.Builder
	for _, d := range catalog.Scored() {
		kws := catalog.Keywords(d)
		if len(kws) > 5 {
			kws = kws[:5]
		}
		fmt.Fprintf(&sb, "- %s: Documents about %s\n", d, strings.Join(kws, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ComposeVision builds the vision analysis prompt for a document page.
func ComposeVision(filename string) string {
	var sb strings.Builder
	sb.WriteString(visionInstructions)
	sb.WriteString("\n\nDocument filename: ")
	sb.WriteString(filename)
	return sb.String()
}

// ComposeText builds the text classification prompt from the instruction
// template, the response specification, and the text sample.
func ComposeText(filename, text string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, textInstructions, CatalogSection())
	sb.WriteString("\n\n")
	sb.WriteString(textSpec)
	fmt.Fprintf(&sb, "\n\nDocument filename: %s\n\nDocument text:\n%s", filename, text)
	return sb.String()
}

// ArbitrationContext carries both analyses' evidence into the arbiter prompt.
type ArbitrationContext struct {
	Filename         string
	VisionDomains    []string
	DocType          string
	HasTables        bool
	HasCharts        bool
	VisionConfidence float64
	TextDomain       string
	TextConfidence   float64
	Keywords         []string
	TextReasoning    string
}

// ComposeArbitration builds the final-decision prompt presenting both
// analyses side by side.
func ComposeArbitration(actx ArbitrationContext) string {
	visionDomains := "none detected"
	if len(actx.VisionDomains) > 0 {
		visionDomains = strings.Join(actx.VisionDomains, ", ")
	}

	keywords := actx.Keywords
	if len(keywords) > 10 {
		keywords = keywords[:10]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, arbitrateInstructions, CatalogSection())
	sb.WriteString("\n\n")
	sb.WriteString(arbitrateSpec)
	fmt.Fprintf(&sb, `

Make a final classification decision based on these analyses:

Filename: %s

Vision Analysis:
- Domain hints: %s
- Document type: %s
- Has tables: %t
- Has charts: %t
- Confidence: %.2f

Text Classification:
- Primary domain: %s
- Confidence: %.2f
- Keywords: %s
- Reasoning: %s

Please provide your final classification.`,
		actx.Filename,
		visionDomains,
		actx.DocType,
		actx.HasTables,
		actx.HasCharts,
		actx.VisionConfidence,
		actx.TextDomain,
		actx.TextConfidence,
		strings.Join(keywords, ", "),
		actx.TextReasoning,
	)
	return sb.String()
}
