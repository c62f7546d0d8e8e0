package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/pace-rs/pace/internal/domain"
)

// parseTimeFlag interprets a user-supplied --at value. An empty value yields
// the zero PaceDateTime so the service clock applies. Accepted forms, tried
// in order: RFC 3339, "2006-01-02 15:04", "15:04:05" and "15:04"; bare
// clock times land on today's date in the configured zone.
func parseTimeFlag(raw string, zone *time.Location, now time.Time) (domain.PaceDateTime, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.PaceDateTime{}, nil
	}

	if dt, err := domain.ParsePaceDateTime(raw); err == nil {
		return dt, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", raw, zone); err == nil {
		return domain.NewPaceDateTime(t), nil
	}

	for _, layout := range []string{"15:04:05", "15:04"} {
		clock, err := time.ParseInLocation(layout, raw, zone)
		if err != nil {
			continue
		}
		day := now.In(zone)
		t := time.Date(day.Year(), day.Month(), day.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, zone)
		return domain.NewPaceDateTime(t), nil
	}

	return domain.PaceDateTime{}, fmt.Errorf("time %q: %w", raw, domain.ErrInvalidDateTime)
}
