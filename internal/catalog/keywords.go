package catalog

// keywords holds the representative keyword list per scored domain.
// Entry order within each list is significant: matched keywords are
// reported in this order by the text classifier's fallback.
var keywords = map[Domain][]string{
	Finance: {
		"financial", "banking", "investment", "stock", "bond", "portfolio",
		"accounting", "audit", "revenue", "profit", "loss", "balance sheet",
		"income statement", "cash flow", "equity", "asset", "liability",
		"fiscal", "monetary", "securities", "derivatives", "hedge fund",
	},
	Law: {
		"legal", "court", "judge", "attorney", "lawsuit", "plaintiff",
		"defendant", "verdict", "statute", "regulation", "compliance",
		"contract", "agreement", "litigation", "jurisdiction", "appeal",
		"prosecution", "defense", "testimony", "evidence", "judicial",
	},
	Science: {
		"research", "experiment", "hypothesis", "theory", "methodology",
		"analysis", "data", "results", "conclusion", "abstract", "publication",
		"peer review", "scientific", "laboratory", "variable", "control",
		"observation", "phenomenon", "empirical", "quantitative",
	},
	Technology: {
		"software", "hardware", "algorithm", "programming", "code",
		"system", "application", "platform", "network", "database",
		"cloud", "artificial intelligence", "machine learning", "cybersecurity",
		"blockchain", "api", "framework", "architecture", "deployment",
	},
	Healthcare: {
		"medical", "patient", "diagnosis", "treatment", "clinical",
		"hospital", "physician", "nurse", "therapy", "medication",
		"disease", "symptom", "health", "care", "surgical", "pharmaceutical",
		"radiology", "pathology", "anatomy", "physiology",
	},
	Education: {
		"teaching", "learning", "student", "curriculum", "course",
		"pedagogy", "instruction", "assessment", "academic", "university",
		"school", "education", "training", "classroom", "textbook",
		"syllabus", "enrollment", "degree", "diploma", "scholarship",
	},
	Business: {
		"management", "strategy", "marketing", "sales", "customer",
		"product", "service", "business plan", "entrepreneurship", "startup",
		"operations", "supply chain", "vendor", "procurement", "logistics",
		"human resources", "employee", "organizational", "corporate",
	},
	Engineering: {
		"design", "construction", "structural", "mechanical", "electrical",
		"civil", "chemical", "aerospace", "manufacturing", "CAD",
		"blueprint", "specifications", "materials", "testing", "prototype",
		"maintenance", "installation", "inspection", "quality control",
	},
	Arts: {
		"creative", "artistic", "design", "visual", "performance",
		"music", "theater", "literature", "painting", "sculpture",
		"photography", "film", "media", "aesthetic", "exhibition",
		"gallery", "composition", "choreography", "narrative",
	},
}

// Keywords returns the keyword list for a scored domain.
// General and unrecognized domains have no keywords.
func Keywords(d Domain) []string {
	return keywords[d]
}
