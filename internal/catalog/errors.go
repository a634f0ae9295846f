package catalog

import "errors"

// ErrInvalidDomain indicates a tag outside the closed domain set.
var ErrInvalidDomain = errors.New("invalid domain")
