package domain

import (
	"fmt"
	"strings"
	"time"
)

// ActivityStatus is the lifecycle state of an activity.
type ActivityStatus string

const (
	StatusActive ActivityStatus = "active"
	StatusHeld   ActivityStatus = "held"
	StatusEnded  ActivityStatus = "ended"
)

// ParseActivityStatus canonicalizes a persisted status value.
func ParseActivityStatus(raw string) (ActivityStatus, error) {
	switch ActivityStatus(strings.TrimSpace(strings.ToLower(raw))) {
	case StatusActive:
		return StatusActive, nil
	case StatusHeld:
		return StatusHeld, nil
	case StatusEnded:
		return StatusEnded, nil
	default:
		return "", fmt.Errorf("parse activity status %q: %w", raw, ErrInvalidStatus)
	}
}

// IsOpen reports whether the status counts toward the current-activity
// invariant: at most one activity may be active or held at a time.
func (s ActivityStatus) IsOpen() bool {
	return s == StatusActive || s == StatusHeld
}

// Activity is a tracked unit of work. Category and tags are carried as text
// in memory; the storage layer dedups them into lookup rows and references
// them by guid.
type Activity struct {
	Guid          Guid
	Description   string
	Category      string
	Tags          []string
	Begin         PaceDateTime
	End           *PaceDateTime
	Duration      *time.Duration
	Status        ActivityStatus
	Intermissions []Intermission
}

// ActivityInput holds input values for creating an activity.
type ActivityInput struct {
	Guid        Guid
	Description string
	Category    string
	Tags        []string
	Begin       PaceDateTime
}

// NewActivity creates an activity in the active state.
func NewActivity(in ActivityInput) (Activity, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)

	if in.Guid.IsZero() {
		return Activity{}, ErrInvalidGuid
	}
	if in.Description == "" {
		return Activity{}, ErrInvalidDescription
	}
	if in.Begin.IsZero() {
		return Activity{}, ErrInvalidDateTime
	}

	return Activity{
		Guid:        in.Guid,
		Description: in.Description,
		Category:    in.Category,
		Tags:        NormalizeTags(in.Tags),
		Begin:       in.Begin,
		Status:      StatusActive,
	}, nil
}

// IsCurrent reports whether the activity counts as the current activity.
func (a *Activity) IsCurrent() bool {
	return a.Status.IsOpen()
}

// OpenIntermission returns the most recent open intermission, or nil.
func (a *Activity) OpenIntermission() *Intermission {
	for i := len(a.Intermissions) - 1; i >= 0; i-- {
		if a.Intermissions[i].IsOpen() {
			return &a.Intermissions[i]
		}
	}
	return nil
}

// Hold pauses an active or held activity. When an intermission is already
// open, IntermissionExtend leaves it as-is and creates no record, so
// repeating the hold is idempotent; IntermissionNew closes it at begin and
// appends a fresh one. Returns the appended intermission, or nil when
// extending in place.
func (a *Activity) Hold(action IntermissionAction, guid Guid, begin PaceDateTime, reason string) (*Intermission, error) {
	if a.Status == StatusEnded {
		return nil, ErrAlreadyEnded
	}
	if !a.Status.IsOpen() {
		return nil, ErrNotActive
	}
	if begin.Before(a.Begin) {
		return nil, fmt.Errorf("hold at %s before activity begin %s: %w", begin, a.Begin, ErrInconsistentTimestamps)
	}

	if open := a.OpenIntermission(); open != nil {
		if action == IntermissionExtend {
			a.Status = StatusHeld
			return nil, nil
		}
		if err := open.Close(begin); err != nil {
			return nil, err
		}
	}

	intermission, err := NewIntermission(guid, a.Guid, begin, reason)
	if err != nil {
		return nil, err
	}
	a.Intermissions = append(a.Intermissions, intermission)
	a.Status = StatusHeld
	return &a.Intermissions[len(a.Intermissions)-1], nil
}

// Resume reactivates a held activity, closing the open intermission at the
// given instant.
func (a *Activity) Resume(end PaceDateTime) error {
	if a.Status == StatusEnded {
		return ErrAlreadyEnded
	}
	if a.Status != StatusHeld {
		return ErrNotHeld
	}
	if open := a.OpenIntermission(); open != nil {
		if err := open.Close(end); err != nil {
			return err
		}
	}
	a.Status = StatusActive
	return nil
}

// Finish ends an active or held activity at the given instant. A held
// activity has its open intermission closed at the same instant. The worked
// duration is computed and stored on the activity.
func (a *Activity) Finish(end PaceDateTime) error {
	if a.Status == StatusEnded {
		return ErrAlreadyEnded
	}
	if a.Status == StatusHeld {
		if open := a.OpenIntermission(); open != nil {
			if err := open.Close(end); err != nil {
				return err
			}
		}
	}

	worked, err := workedDuration(a.Begin, end, a.Intermissions)
	if err != nil {
		return err
	}

	a.End = &end
	a.Duration = &worked
	a.Status = StatusEnded
	return nil
}

// WorkedDuration returns (end - begin) minus the summed intermission
// durations for an ended activity.
func (a *Activity) WorkedDuration() (time.Duration, error) {
	if a.Status != StatusEnded || a.End == nil {
		return 0, ErrNotActive
	}
	if a.Duration != nil {
		return *a.Duration, nil
	}
	return workedDuration(a.Begin, *a.End, a.Intermissions)
}

// workedDuration computes elapsed time minus intermissions, mapping every
// negative intermediate result to ErrInconsistentTimestamps.
func workedDuration(begin, end PaceDateTime, intermissions []Intermission) (time.Duration, error) {
	elapsed, err := DurationBetween(begin, end)
	if err != nil {
		return 0, fmt.Errorf("activity elapsed time: %w", ErrInconsistentTimestamps)
	}

	var paused time.Duration
	for _, intermission := range intermissions {
		d, err := intermission.Duration()
		if err != nil {
			return 0, err
		}
		paused += d
	}

	worked := elapsed - paused
	if worked < 0 {
		return 0, fmt.Errorf("intermissions exceed elapsed time: %w", ErrInconsistentTimestamps)
	}
	return worked, nil
}
