// Package prompts holds the static prompt text for each analysis stage and
// the composition helpers that assemble full prompts from instructions,
// response specifications, and catalog or analysis context.
//
// Instruction text is deliberately fixed rather than configurable: the vision
// response parser matches against the catalog lexicon, and prompt drift away
// from that lexicon would silently degrade hint detection.
package prompts

import (
	"encoding/json"
	"slices"
)

// Stage identifies an analysis stage that owns a prompt.
type Stage string

// Valid analysis stages.
const (
	StageVision    Stage = "vision"
	StageText      Stage = "text"
	StageArbitrate Stage = "arbitrate"
)

var stages = []Stage{
	StageVision,
	StageText,
	StageArbitrate,
}

// Stages returns the list of valid analysis stages.
func Stages() []Stage {
	return stages
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Stage(raw)
	if !slices.Contains(stages, v) {
		return ErrInvalidStage
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known analysis stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
