package store

import "errors"

// Sentinel kinds for store errors. Reads never fail by design; only
// writes surface errors.
var (
	ErrSaveTable = errors.New("save table failed")
)
