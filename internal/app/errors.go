package app

import "errors"

// ErrNotFound and related errors describe repository and lifecycle failures
// observed by callers.
var (
	ErrNotFound              = errors.New("not found")
	ErrNoCurrentActivity     = errors.New("no current activity")
	ErrActivityAlreadyActive = errors.New("another activity is already active")
	ErrMalformedRow          = errors.New("malformed row")
	ErrReferentialIntegrity  = errors.New("referential integrity violation")
	ErrInvalidTagPolicy      = errors.New("invalid tag delete policy")
)
