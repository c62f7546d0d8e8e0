package domain

import (
	"errors"
	"testing"
)

func TestNewGuidIsParseable(t *testing.T) {
	g := NewGuid()
	if g.IsZero() {
		t.Fatal("NewGuid() returned zero guid")
	}
	parsed, err := ParseGuid(g.String())
	if err != nil {
		t.Fatalf("ParseGuid() error = %v", err)
	}
	if parsed != g {
		t.Fatalf("round trip changed guid: %q != %q", parsed, g)
	}
}

func TestNewGuidIsTimeOrdered(t *testing.T) {
	a := NewGuid()
	b := NewGuid()
	if !(a.String() < b.String()) {
		t.Fatalf("expected %q to sort before %q", a, b)
	}
}

func TestParseGuidRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"not-a-guid",
		"0191b6a8-0000-7000-8000",
		"0191b6a8-0000-7000-8000-0123456789abcdef",
		"zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz",
	}
	for _, raw := range cases {
		if _, err := ParseGuid(raw); !errors.Is(err, ErrInvalidGuid) {
			t.Fatalf("ParseGuid(%q) error = %v, want ErrInvalidGuid", raw, err)
		}
	}
}

func TestParseGuidTrimsWhitespace(t *testing.T) {
	g := NewGuid()
	parsed, err := ParseGuid("  " + g.String() + " ")
	if err != nil {
		t.Fatalf("ParseGuid() error = %v", err)
	}
	if parsed != g {
		t.Fatalf("unexpected guid %q", parsed)
	}
}
