package prompts

import "errors"

// ErrInvalidStage indicates an unrecognized analysis stage value.
var ErrInvalidStage = errors.New("invalid stage")
