package domain

import "errors"

var (
	ErrInvalidGuid            = errors.New("invalid guid")
	ErrInvalidTimeZone        = errors.New("invalid time zone")
	ErrInvalidDateTime        = errors.New("invalid date time")
	ErrNegativeDuration       = errors.New("negative duration")
	ErrInconsistentTimestamps = errors.New("inconsistent timestamps")
	ErrInvalidDescription     = errors.New("invalid description")
	ErrInvalidCategory        = errors.New("invalid category")
	ErrInvalidTag             = errors.New("invalid tag")
	ErrInvalidStatus          = errors.New("invalid activity status")
	ErrInvalidAction          = errors.New("invalid intermission action")
)

// Lifecycle transition errors.
var (
	ErrNotActive    = errors.New("activity is not active")
	ErrNotHeld      = errors.New("activity is not held")
	ErrAlreadyEnded = errors.New("activity already ended")
)
