package intake

import "errors"

var (
	ErrSourceMissing  = errors.New("source document not found")
	ErrUnreadable     = errors.New("source document unreadable")
	ErrTextExtraction = errors.New("text extraction failed")
	ErrRenderFailed   = errors.New("page rendering failed")
)
