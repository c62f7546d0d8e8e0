package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/pace-rs/pace/internal/app"
	"github.com/pace-rs/pace/internal/domain"
)

func TestActivityRowToDomainRejectsBadValues(t *testing.T) {
	valid := activityRow{
		guid:   domain.NewGuid().String(),
		begin:  "2026-03-14T09:00:00Z",
		status: "active",
	}
	valid.descriptionText = "ok"

	cases := []struct {
		name   string
		mutate func(*activityRow)
	}{
		{"bad guid", func(r *activityRow) { r.guid = "nope" }},
		{"bad begin", func(r *activityRow) { r.begin = "yesterday" }},
		{"bad status", func(r *activityRow) { r.status = "paused" }},
		{"bad end", func(r *activityRow) { r.end = sql.NullString{String: "later", Valid: true} }},
		{"negative duration", func(r *activityRow) { r.duration = sql.NullInt64{Int64: -1, Valid: true} }},
		{"ended without end", func(r *activityRow) { r.status = "ended" }},
	}
	for _, tc := range cases {
		row := valid
		tc.mutate(&row)
		if _, err := row.toDomain(); !errors.Is(err, app.ErrMalformedRow) {
			t.Fatalf("%s: expected ErrMalformedRow, got %v", tc.name, err)
		}
	}

	if _, err := valid.toDomain(); err != nil {
		t.Fatalf("valid row rejected: %v", err)
	}
}

func TestGetActivitySurfacesMalformedRow(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, Options{})

	activity := makeActivity(t, "fragile", nil)
	if err := repo.CreateActivity(ctx, activity); err != nil {
		t.Fatalf("CreateActivity() error = %v", err)
	}
	if _, err := repo.db.ExecContext(ctx,
		`UPDATE activities SET status = 'corrupt' WHERE guid = ?`, activity.Guid.String(),
	); err != nil {
		t.Fatalf("corrupt row: %v", err)
	}

	if _, err := repo.GetActivity(ctx, activity.Guid); !errors.Is(err, app.ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}
