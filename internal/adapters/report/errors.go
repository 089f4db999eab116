package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrGenerate = errors.New("report generation failed")
)
