package prompts

const visionInstructions = `Analyze this document page and provide insights about its domain and characteristics.

Focus on:
1. Visual Domain Indicators: What domain does this document belong to based on visual elements?
   - Look for logos, letterheads, formatting styles
   - Charts, graphs, tables (finance, science)
   - Legal formatting, court headers (law)
   - Medical symbols, prescription formats (healthcare)
   - Code snippets, technical diagrams (technology)
   - Academic formatting, citations (education/science)

2. Document Type: Is this a report, contract, research paper, presentation, invoice, manual, or specification?

3. Layout Analysis:
   - Does it contain tables, charts, or graphs?
   - Is it text-heavy or visual-heavy?
   - What is the overall structure?

4. Domain Classification: Based on visual analysis, what are the top 3 most likely domains?

Provide your analysis in a structured format focusing on domain classification.`

const textInstructions = `You are a document classification expert. Analyze the provided document text and classify it into ONE of the following domains:

%s

Also consider:
- general: Documents that don't fit clearly into other categories

Your task:
1. Analyze the text content carefully
2. Identify key terminology and concepts
3. Determine the primary domain
4. Assign a confidence score (0.0 to 1.0)
5. Extract relevant keywords`

const arbitrateInstructions = `You are an expert document classifier tasked with making the final domain classification decision.

You will receive analysis from two specialized stages:
1. Vision analysis - examined visual and layout elements
2. Text classification - examined textual content

Your task is to:
1. Weigh both analyses based on their confidence scores
2. Look for agreement between the two stages
3. Make a final domain classification decision
4. Provide a confidence score and clear reasoning

Available domains:

%s
- general: Documents that don't fit other categories`

var instructions = map[Stage]string{
	StageVision:    visionInstructions,
	StageText:      textInstructions,
	StageArbitrate: arbitrateInstructions,
}

// Instructions returns the instruction text for an analysis stage.
// Text and arbitrate instructions contain a %s verb for the catalog section.
// Returns ErrInvalidStage if the stage is not recognized.
func Instructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
