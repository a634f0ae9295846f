package prompts

const textSpec = `Respond with a JSON object matching this exact structure:

{
  "primary_domain": "<domain_name>",
  "confidence": 0.85,
  "reasoning": "<brief explanation>",
  "keywords": ["<keyword1>", "<keyword2>"],
  "alternative_domains": ["<domain2>", "<domain3>"]
}

Field constraints:
- primary_domain: Exactly one domain name from the list provided.
- confidence: Number between 0.0 and 1.0 reflecting how clearly the text
  belongs to the primary domain.
- reasoning: Brief explanation of the terminology and concepts that led to
  the classification.
- keywords: Up to 10 terms from the text that support the classification.
- alternative_domains: Up to 2 other plausible domains, strongest first.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Choose only from the domains listed; use "general" when nothing fits`

const arbitrateSpec = `Respond with a JSON object matching this exact structure:

{
  "final_domain": "<domain_name>",
  "confidence": 0.90,
  "reasoning": "<detailed explanation of decision>",
  "agreement_level": "<high|medium|low>",
  "primary_evidence": "<key factors that led to decision>"
}

Field constraints:
- final_domain: Exactly one domain name from the list provided.
- confidence: Number between 0.0 and 1.0 for the final decision.
- reasoning: Detailed explanation weighing both analyses.
- agreement_level: How strongly the two analyses concurred.
- primary_evidence: The decisive factors.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Weigh the text analysis more heavily when both are equally confident;
  visual signals are coarser than terminology`

var specs = map[Stage]string{
	StageText:      textSpec,
	StageArbitrate: arbitrateSpec,
}

// Spec returns the response specification for an analysis stage.
// The vision stage has no spec: its free-text response is parsed by
// lexicon heuristics rather than as JSON.
// Returns ErrInvalidStage if the stage has no specification.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
