package record

import "errors"

// Sentinel kinds for record errors.
var (
	ErrUnknownTable = errors.New("unknown table")
)
