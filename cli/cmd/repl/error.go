package repl

import "errors"

// ErrOutOfBounds reports a history index outside the stored entries.
var ErrOutOfBounds = errors.New("index out of range")
