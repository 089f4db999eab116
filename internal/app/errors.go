package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrTooFewPlayers = errors.New("at least two players are required")
)
