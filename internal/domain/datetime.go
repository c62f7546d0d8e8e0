package domain

import (
	"fmt"
	"strings"
	"time"
)

// PaceDateTime is a wall-clock timestamp that always carries an explicit UTC
// offset. Comparisons and duration arithmetic normalize to UTC first, so two
// values taken in different zones compare by instant, not by wall clock.
// Values are truncated to second precision, matching the stored form.
type PaceDateTime struct {
	t time.Time
}

// NewPaceDateTime wraps a time value, keeping whatever offset it carries.
func NewPaceDateTime(t time.Time) PaceDateTime {
	return PaceDateTime{t: t.Truncate(time.Second)}
}

// Now returns the current instant in the local zone.
func Now() PaceDateTime {
	return NewPaceDateTime(time.Now())
}

// InTimeZone re-expresses an instant in the named IANA zone.
func InTimeZone(t time.Time, zone string) (PaceDateTime, error) {
	loc, err := LoadTimeZone(zone)
	if err != nil {
		return PaceDateTime{}, err
	}
	return NewPaceDateTime(t.In(loc)), nil
}

// AtFixedOffset re-expresses an instant at a fixed offset east of UTC.
func AtFixedOffset(t time.Time, offset time.Duration) PaceDateTime {
	return NewPaceDateTime(t.In(time.FixedZone("", int(offset/time.Second))))
}

// LoadTimeZone resolves an IANA zone name, mapping unknown names to
// ErrInvalidTimeZone. An empty name means the local zone.
func LoadTimeZone(zone string) (*time.Location, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", zone, ErrInvalidTimeZone)
	}
	return loc, nil
}

// ParsePaceDateTime parses an RFC 3339 timestamp, preserving its offset.
func ParsePaceDateTime(raw string) (PaceDateTime, error) {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return PaceDateTime{}, fmt.Errorf("parse date time %q: %w", raw, ErrInvalidDateTime)
	}
	return NewPaceDateTime(parsed), nil
}

// Time returns the wrapped value with its original offset.
func (p PaceDateTime) Time() time.Time {
	return p.t
}

// UTC returns the instant normalized to UTC.
func (p PaceDateTime) UTC() time.Time {
	return p.t.UTC()
}

// IsZero reports whether the timestamp is unset.
func (p PaceDateTime) IsZero() bool {
	return p.t.IsZero()
}

// Before reports whether p is strictly earlier than other.
func (p PaceDateTime) Before(other PaceDateTime) bool {
	return p.UTC().Before(other.UTC())
}

// After reports whether p is strictly later than other.
func (p PaceDateTime) After(other PaceDateTime) bool {
	return p.UTC().After(other.UTC())
}

// Equal compares by instant, ignoring the offset representation.
func (p PaceDateTime) Equal(other PaceDateTime) bool {
	return p.UTC().Equal(other.UTC())
}

// Add returns the timestamp shifted by d, keeping the offset.
func (p PaceDateTime) Add(d time.Duration) PaceDateTime {
	return PaceDateTime{t: p.t.Add(d)}
}

// String renders the RFC 3339 form with the explicit offset.
func (p PaceDateTime) String() string {
	return p.t.Format(time.RFC3339)
}

// DurationBetween computes end - begin after normalizing both to UTC. An
// unordered pair is reported as ErrNegativeDuration rather than clamped, so
// clock skew and malformed input stay visible.
func DurationBetween(begin, end PaceDateTime) (time.Duration, error) {
	d := end.UTC().Sub(begin.UTC())
	if d < 0 {
		return 0, fmt.Errorf("duration from %s to %s: %w", begin, end, ErrNegativeDuration)
	}
	return d, nil
}

// TimeRange is a closed interval between two instants.
type TimeRange struct {
	Start PaceDateTime
	End   PaceDateTime
}

// NewTimeRange builds a range, rejecting unordered endpoints.
func NewTimeRange(start, end PaceDateTime) (TimeRange, error) {
	if _, err := DurationBetween(start, end); err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: start, End: end}, nil
}

// Contains reports whether t lies within the range, endpoints included.
func (r TimeRange) Contains(t PaceDateTime) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Overlaps reports whether the two ranges share at least one instant.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.UTC().Sub(r.Start.UTC())
}
