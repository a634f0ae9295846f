package catalog

// hintDomains lists the domains the vision parser can detect, in the
// fixed order used to break ties when collecting hints. Arts and General
// are absent: the original lexicon carries no visual triggers for them.
var hintDomains = []Domain{
	Finance,
	Law,
	Science,
	Technology,
	Healthcare,
	Education,
	Business,
	Engineering,
}

// hintTriggers maps each hint domain to the words that mark its presence
// in a vision model's free-text response.
var hintTriggers = map[Domain][]string{
	Finance:     {"financial", "banking", "investment", "stock", "revenue", "accounting"},
	Law:         {"legal", "court", "contract", "attorney", "lawsuit", "statute"},
	Science:     {"research", "experiment", "hypothesis", "scientific", "study"},
	Technology:  {"software", "code", "algorithm", "system", "technical", "api"},
	Healthcare:  {"medical", "patient", "clinical", "diagnosis", "health", "pharmaceutical"},
	Education:   {"academic", "university", "course", "student", "curriculum"},
	Business:    {"business", "management", "strategy", "corporate", "marketing"},
	Engineering: {"engineering", "design", "construction", "structural", "mechanical"},
}

// HintDomains returns the vision hint domains in detection order.
func HintDomains() []Domain {
	return hintDomains
}

// HintTriggers returns the trigger words for a vision hint domain.
func HintTriggers(d Domain) []string {
	return hintTriggers[d]
}

// Word lists for layout feature detection in vision responses.
var (
	tableWords = []string{"table", "tabular", "grid"}
	chartWords = []string{"chart", "graph", "diagram", "visualization"}
)

// TableWords returns the trigger words indicating tabular content.
func TableWords() []string {
	return tableWords
}

// ChartWords returns the trigger words indicating charts or graphs.
func ChartWords() []string {
	return chartWords
}

// DocType pairs a document-type tag with the phrases that identify it.
type DocType struct {
	Tag      string
	Triggers []string
}

// docTypes is searched first-match in order; the first tag whose trigger
// phrase occurs in the response wins.
var docTypes = []DocType{
	{"report", []string{"report", "annual report", "quarterly report"}},
	{"contract", []string{"contract", "agreement"}},
	{"research_paper", []string{"research paper", "academic paper", "journal article"}},
	{"presentation", []string{"presentation", "slides", "powerpoint"}},
	{"invoice", []string{"invoice", "bill", "receipt"}},
	{"manual", []string{"manual", "guide", "handbook"}},
	{"specification", []string{"specification", "spec sheet", "datasheet"}},
}

// DefaultDocType is assigned when no trigger phrase matches.
const DefaultDocType = "document"

// DocTypes returns the ordered document-type table.
func DocTypes() []DocType {
	return docTypes
}
