package text

import "errors"

// ErrInvalidFont is returned when font bytes cannot be parsed.
var ErrInvalidFont = errors.New("text: invalid font data")
