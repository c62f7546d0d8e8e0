package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestMigrateAppliesFullLedger(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, Options{})

	applied, err := repo.AppliedVersions(ctx)
	if err != nil {
		t.Fatalf("AppliedVersions() error = %v", err)
	}
	if len(applied) != len(migrations) {
		t.Fatalf("expected %d applied versions, got %d", len(migrations), len(applied))
	}
	for i, version := range applied {
		if version != migrations[i].version {
			t.Fatalf("unexpected version %d at position %d", version, i)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, Options{})

	// Open already migrated; a second run must be a no-op.
	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count ledger rows: %v", err)
	}
	if count != int64(len(migrations)) {
		t.Fatalf("expected %d ledger rows, got %d", len(migrations), count)
	}
}

func TestMigrateOnReopenIsNoOp(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pace.db")

	repo, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	applied, err := reopened.AppliedVersions(ctx)
	if err != nil {
		t.Fatalf("AppliedVersions() error = %v", err)
	}
	if len(applied) != len(migrations) {
		t.Fatalf("expected %d applied versions, got %d", len(migrations), len(applied))
	}
}

func TestDowngradeAndRemigrate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, Options{})

	if err := repo.Downgrade(ctx, 4); err != nil {
		t.Fatalf("Downgrade() error = %v", err)
	}
	applied, err := repo.AppliedVersions(ctx)
	if err != nil {
		t.Fatalf("AppliedVersions() error = %v", err)
	}
	if len(applied) != 4 || applied[len(applied)-1] != 4 {
		t.Fatalf("unexpected ledger after downgrade: %v", applied)
	}

	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("re-Migrate() error = %v", err)
	}
	applied, err = repo.AppliedVersions(ctx)
	if err != nil {
		t.Fatalf("AppliedVersions() error = %v", err)
	}
	if len(applied) != len(migrations) {
		t.Fatalf("expected %d applied versions, got %d", len(migrations), len(applied))
	}

	// The schema is usable again after the round trip.
	activity := makeActivity(t, "post-migration", []string{"ok"})
	if err := repo.CreateActivity(ctx, activity); err != nil {
		t.Fatalf("CreateActivity() error = %v", err)
	}
}

func TestMigrateRejectsUnknownLedgerState(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, Options{})

	// A ledger ahead of the binary means a newer version touched the store.
	if _, err := repo.db.ExecContext(ctx,
		`INSERT INTO schema_migrations(guid, version) VALUES ('00000000-0000-7000-8000-000000000000', 99)`,
	); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	if err := repo.Migrate(ctx); !errors.Is(err, ErrMigrationFailed) {
		t.Fatalf("expected ErrMigrationFailed, got %v", err)
	}
}
