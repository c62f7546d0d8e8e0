package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// guidLen defines the canonical textual length of a Guid.
const guidLen = 36

// Guid is the primary key for every persisted entity. Values are UUIDv7, so
// the canonical 36-character text form sorts lexicographically by creation
// time. A Guid is immutable once assigned.
type Guid string

// NewGuid returns a fresh time-ordered Guid.
func NewGuid() Guid {
	return Guid(uuid.Must(uuid.NewV7()).String())
}

// ParseGuid parses the canonical textual form of a Guid.
func ParseGuid(raw string) (Guid, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != guidLen {
		return "", fmt.Errorf("parse guid %q: %w", raw, ErrInvalidGuid)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse guid %q: %w", raw, ErrInvalidGuid)
	}
	return Guid(id.String()), nil
}

// String returns the canonical textual form.
func (g Guid) String() string {
	return string(g)
}

// IsZero reports whether the guid is unassigned.
func (g Guid) IsZero() bool {
	return g == ""
}
