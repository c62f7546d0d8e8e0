package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewPaceDateTimeTruncatesToSeconds(t *testing.T) {
	raw := time.Date(2026, 3, 14, 9, 26, 53, 589_793_238, time.UTC)
	dt := NewPaceDateTime(raw)
	if dt.Time().Nanosecond() != 0 {
		t.Fatalf("expected second precision, got %v", dt.Time())
	}
	if dt.String() != "2026-03-14T09:26:53Z" {
		t.Fatalf("unexpected rendering %q", dt.String())
	}
}

func TestEqualComparesByInstant(t *testing.T) {
	instant := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	utc := NewPaceDateTime(instant)
	offset := AtFixedOffset(instant, 2*time.Hour)
	if offset.String() != "2026-03-14T14:00:00+02:00" {
		t.Fatalf("unexpected offset rendering %q", offset.String())
	}
	if !utc.Equal(offset) {
		t.Fatalf("expected %s to equal %s", utc, offset)
	}
	if utc.Before(offset) || utc.After(offset) {
		t.Fatal("same instant must not order before or after itself")
	}
}

func TestDurationBetweenAcrossZones(t *testing.T) {
	begin := NewPaceDateTime(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	end := AtFixedOffset(time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC), -5*time.Hour)
	d, err := DurationBetween(begin, end)
	if err != nil {
		t.Fatalf("DurationBetween() error = %v", err)
	}
	if d != 2*time.Hour+30*time.Minute {
		t.Fatalf("unexpected duration %v", d)
	}
}

func TestDurationBetweenRejectsUnorderedPair(t *testing.T) {
	begin := NewPaceDateTime(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	end := begin.Add(-time.Second)
	if _, err := DurationBetween(begin, end); !errors.Is(err, ErrNegativeDuration) {
		t.Fatalf("expected ErrNegativeDuration, got %v", err)
	}
}

func TestParsePaceDateTime(t *testing.T) {
	dt, err := ParsePaceDateTime("2026-03-14T09:00:00+01:00")
	if err != nil {
		t.Fatalf("ParsePaceDateTime() error = %v", err)
	}
	if dt.UTC() != time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected instant %v", dt.UTC())
	}
	if _, err := ParsePaceDateTime("14/03/2026 09:00"); !errors.Is(err, ErrInvalidDateTime) {
		t.Fatalf("expected ErrInvalidDateTime, got %v", err)
	}
}

func TestLoadTimeZone(t *testing.T) {
	loc, err := LoadTimeZone("")
	if err != nil {
		t.Fatalf("LoadTimeZone(\"\") error = %v", err)
	}
	if loc != time.Local {
		t.Fatalf("expected local zone, got %v", loc)
	}
	if _, err := LoadTimeZone("UTC"); err != nil {
		t.Fatalf("LoadTimeZone(UTC) error = %v", err)
	}
	if _, err := LoadTimeZone("Atlantis/Lost_City"); !errors.Is(err, ErrInvalidTimeZone) {
		t.Fatalf("expected ErrInvalidTimeZone, got %v", err)
	}
}

func TestTimeRange(t *testing.T) {
	start := NewPaceDateTime(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	end := start.Add(2 * time.Hour)

	r, err := NewTimeRange(start, end)
	if err != nil {
		t.Fatalf("NewTimeRange() error = %v", err)
	}
	if r.Duration() != 2*time.Hour {
		t.Fatalf("unexpected duration %v", r.Duration())
	}
	if !r.Contains(start) || !r.Contains(end) {
		t.Fatal("range must contain its endpoints")
	}
	if r.Contains(end.Add(time.Second)) {
		t.Fatal("range must not contain instants past its end")
	}

	other, err := NewTimeRange(start.Add(time.Hour), end.Add(time.Hour))
	if err != nil {
		t.Fatalf("NewTimeRange() error = %v", err)
	}
	if !r.Overlaps(other) {
		t.Fatal("expected overlapping ranges")
	}
	disjoint, err := NewTimeRange(end.Add(time.Second), end.Add(time.Hour))
	if err != nil {
		t.Fatalf("NewTimeRange() error = %v", err)
	}
	if r.Overlaps(disjoint) {
		t.Fatal("expected disjoint ranges")
	}

	if _, err := NewTimeRange(end, start); !errors.Is(err, ErrNegativeDuration) {
		t.Fatalf("expected ErrNegativeDuration, got %v", err)
	}
}
