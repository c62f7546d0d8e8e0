package domain

import (
	"fmt"
	"strings"
	"time"
)

// IntermissionAction selects how hold treats an already-open intermission.
type IntermissionAction string

const (
	// IntermissionExtend prolongs the most recent open intermission instead
	// of creating a new record.
	IntermissionExtend IntermissionAction = "extend"

	// IntermissionNew always appends a fresh intermission record.
	IntermissionNew IntermissionAction = "new"
)

// ParseIntermissionAction canonicalizes an action value. Empty input means
// extend.
func ParseIntermissionAction(raw string) (IntermissionAction, error) {
	switch IntermissionAction(strings.TrimSpace(strings.ToLower(raw))) {
	case "", IntermissionExtend:
		return IntermissionExtend, nil
	case IntermissionNew:
		return IntermissionNew, nil
	default:
		return "", fmt.Errorf("parse intermission action %q: %w", raw, ErrInvalidAction)
	}
}

// Intermission is a pause interval within an activity's open period. It
// belongs to exactly one activity.
type Intermission struct {
	Guid         Guid
	ActivityGuid Guid
	Begin        PaceDateTime
	End          *PaceDateTime
	Reason       string
}

// NewIntermission opens an intermission on the given activity.
func NewIntermission(guid, activityGuid Guid, begin PaceDateTime, reason string) (Intermission, error) {
	if guid.IsZero() || activityGuid.IsZero() {
		return Intermission{}, ErrInvalidGuid
	}
	if begin.IsZero() {
		return Intermission{}, ErrInvalidDateTime
	}
	return Intermission{
		Guid:         guid,
		ActivityGuid: activityGuid,
		Begin:        begin,
		Reason:       strings.TrimSpace(reason),
	}, nil
}

// IsOpen reports whether the intermission has not been closed yet.
func (i Intermission) IsOpen() bool {
	return i.End == nil
}

// Close sets the end of the intermission. Closing before the begin time is
// rejected as inconsistent.
func (i *Intermission) Close(end PaceDateTime) error {
	if end.Before(i.Begin) {
		return fmt.Errorf("close intermission at %s before begin %s: %w", end, i.Begin, ErrInconsistentTimestamps)
	}
	i.End = &end
	return nil
}

// Duration returns the closed length of the intermission. Open intermissions
// have no duration yet.
func (i Intermission) Duration() (time.Duration, error) {
	if i.End == nil {
		return 0, fmt.Errorf("open intermission %s: %w", i.Guid, ErrInconsistentTimestamps)
	}
	d, err := DurationBetween(i.Begin, *i.End)
	if err != nil {
		return 0, fmt.Errorf("intermission %s: %w", i.Guid, ErrInconsistentTimestamps)
	}
	return d, nil
}
