package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/pace-rs/pace/internal/domain"
)

// ErrMigrationFailed wraps any failure while applying or reverting a schema
// migration. Migration failures are fatal at startup.
var ErrMigrationFailed = errors.New("schema migration failed")

// migration is one statically declared schema change. Versions are strictly
// increasing and gap-free; the runner applies them in slice order.
type migration struct {
	version int64
	name    string
	up      string
	down    string
}

// migrations is the ordered set known to this binary. Append only; never
// renumber.
var migrations = []migration{
	{
		version: 1,
		name:    "create_descriptions",
		up: `CREATE TABLE descriptions (
			guid TEXT PRIMARY KEY,
			content TEXT NOT NULL UNIQUE
		);`,
		down: `DROP TABLE descriptions;`,
	},
	{
		version: 2,
		name:    "create_categories",
		up: `CREATE TABLE categories (
			guid TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);`,
		down: `DROP TABLE categories;`,
	},
	{
		version: 3,
		name:    "create_tags",
		up: `CREATE TABLE tags (
			guid TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);`,
		down: `DROP TABLE tags;`,
	},
	{
		version: 4,
		name:    "create_activities",
		up: `CREATE TABLE activities (
			guid TEXT PRIMARY KEY,
			description_guid TEXT NOT NULL,
			category_guid TEXT,
			begin_time TEXT NOT NULL,
			end_time TEXT,
			duration INTEGER,
			status TEXT NOT NULL,
			FOREIGN KEY(description_guid) REFERENCES descriptions(guid),
			FOREIGN KEY(category_guid) REFERENCES categories(guid)
		);`,
		down: `DROP TABLE activities;`,
	},
	{
		version: 5,
		name:    "create_intermissions",
		up: `CREATE TABLE intermissions (
			guid TEXT PRIMARY KEY,
			activity_guid TEXT NOT NULL,
			begin_time TEXT NOT NULL,
			end_time TEXT,
			reason TEXT,
			FOREIGN KEY(activity_guid) REFERENCES activities(guid) ON DELETE CASCADE
		);`,
		down: `DROP TABLE intermissions;`,
	},
	{
		version: 6,
		name:    "create_activities_tags",
		up: `CREATE TABLE activities_tags (
			activity_guid TEXT NOT NULL,
			tag_guid TEXT NOT NULL,
			PRIMARY KEY(activity_guid, tag_guid),
			FOREIGN KEY(activity_guid) REFERENCES activities(guid) ON DELETE CASCADE,
			FOREIGN KEY(tag_guid) REFERENCES tags(guid)
		);`,
		down: `DROP TABLE activities_tags;`,
	},
	{
		version: 7,
		name:    "create_current_activity_index",
		// At most one row may be active or held at a time. The unique index
		// on a constant expression makes a concurrent external writer lose
		// with a constraint error instead of corrupting state.
		up:   `CREATE UNIQUE INDEX idx_activities_current ON activities((1)) WHERE status IN ('active', 'held');`,
		down: `DROP INDEX idx_activities_current;`,
	},
}

// Migrate brings the schema up to the latest known version. Each pending
// migration runs in its own transaction and is recorded in the
// schema_migrations ledger before the next one starts. Re-running against an
// up-to-date schema is a no-op.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		guid TEXT PRIMARY KEY,
		version INTEGER NOT NULL UNIQUE
	);`); err != nil {
		return fmt.Errorf("create migration ledger: %w: %v", ErrMigrationFailed, err)
	}

	applied, err := r.AppliedVersions(ctx)
	if err != nil {
		return err
	}
	if len(applied) > len(migrations) {
		return fmt.Errorf("ledger at version %d, binary knows %d: schema is ahead: %w",
			applied[len(applied)-1], migrations[len(migrations)-1].version, ErrMigrationFailed)
	}
	for i, version := range applied {
		if version != migrations[i].version {
			return fmt.Errorf("ledger version %d at position %d, expected %d: %w",
				version, i, migrations[i].version, ErrMigrationFailed)
		}
	}

	for _, m := range migrations[len(applied):] {
		if err := r.applyMigration(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// applyMigration runs one migration and its ledger insert in a single
// transaction.
func (r *Repository) applyMigration(ctx context.Context, m migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("apply migration %d %s: %w: %v", m.version, m.name, ErrMigrationFailed, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, m.up); err != nil {
		return fmt.Errorf("apply migration %d %s: %w: %v", m.version, m.name, ErrMigrationFailed, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations(guid, version) VALUES (?, ?)`,
		domain.NewGuid().String(), m.version,
	); err != nil {
		return fmt.Errorf("record migration %d %s: %w: %v", m.version, m.name, ErrMigrationFailed, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d %s: %w: %v", m.version, m.name, ErrMigrationFailed, err)
	}
	return nil
}

// Downgrade reverts migrations, newest first, until the ledger's highest
// version is at most target. Used for rollback and tested for reversibility.
func (r *Repository) Downgrade(ctx context.Context, target int64) error {
	applied, err := r.AppliedVersions(ctx)
	if err != nil {
		return err
	}

	for i := len(applied) - 1; i >= 0; i-- {
		version := applied[i]
		if version <= target {
			break
		}
		m, ok := findMigration(version)
		if !ok {
			return fmt.Errorf("no down statement for version %d: %w", version, ErrMigrationFailed)
		}

		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("revert migration %d %s: %w: %v", m.version, m.name, ErrMigrationFailed, err)
		}
		if _, err := tx.ExecContext(ctx, m.down); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("revert migration %d %s: %w: %v", m.version, m.name, ErrMigrationFailed, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = ?`, m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("unrecord migration %d %s: %w: %v", m.version, m.name, ErrMigrationFailed, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit revert %d %s: %w: %v", m.version, m.name, ErrMigrationFailed, err)
		}
	}
	return nil
}

// AppliedVersions returns the ledger contents in ascending order.
func (r *Repository) AppliedVersions(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version ASC`)
	if err != nil {
		return nil, fmt.Errorf("read migration ledger: %w: %v", ErrMigrationFailed, err)
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan migration ledger: %w: %v", ErrMigrationFailed, err)
		}
		out = append(out, version)
	}
	return out, rows.Err()
}

// findMigration looks a migration up by version.
func findMigration(version int64) (migration, bool) {
	for _, m := range migrations {
		if m.version == version {
			return m, true
		}
	}
	return migration{}, false
}
