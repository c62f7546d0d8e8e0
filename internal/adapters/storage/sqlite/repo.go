package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/pace-rs/pace/internal/app"
	"github.com/pace-rs/pace/internal/domain"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// dsnPragmas is appended to every connection string. WAL and a busy timeout
// let a concurrent external process fail cleanly instead of interleaving
// partial writes; foreign keys enforce the cascade/restrict relations.
const dsnPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Options configures repository behavior.
type Options struct {
	// TagDeletePolicy defaults to app.TagDeleteCascade when empty.
	TagDeletePolicy app.TagDeletePolicy
}

// Repository is the SQLite-backed storage layer. All multi-entity writes of a
// single lifecycle transition run inside one transaction.
type Repository struct {
	db        *sql.DB
	tagPolicy app.TagDeletePolicy
}

// Open opens or creates the store at path and migrates it to the latest
// schema version before returning.
func Open(path string, opts Options) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, "file:"+path+"?"+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return newRepository(db, opts)
}

// OpenInMemory opens a throwaway in-memory store, migrated to latest.
func OpenInMemory(opts Options) (*Repository, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared&"+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	return newRepository(db, opts)
}

// newRepository validates options and runs the migration set.
func newRepository(db *sql.DB, opts Options) (*Repository, error) {
	policy := opts.TagDeletePolicy
	if policy == "" {
		policy = app.TagDeleteCascade
	}
	if !policy.Valid() {
		_ = db.Close()
		return nil, fmt.Errorf("%q: %w", opts.TagDeletePolicy, app.ErrInvalidTagPolicy)
	}

	repo := &Repository{db: db, tagPolicy: policy}
	if err := repo.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the underlying store.
func (r *Repository) Close() error {
	return r.db.Close()
}

// dbtx is the shared contract of *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// withTx runs fn inside a transaction, rolling back on any error.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// activitySelect joins the lookup tables back into textual form.
const activitySelect = `
	SELECT a.guid, d.content, c.name, a.begin_time, a.end_time, a.duration, a.status
	FROM activities a
	JOIN descriptions d ON d.guid = a.description_guid
	LEFT JOIN categories c ON c.guid = a.category_guid
`

// CreateActivity inserts an activity with its lookup and join rows. Fails
// with app.ErrActivityAlreadyActive when another open activity exists.
func (r *Repository) CreateActivity(ctx context.Context, activity domain.Activity) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return insertActivityTx(ctx, tx, activity)
	})
}

// ReplaceCurrentActivity atomically writes the ended predecessor and inserts
// its successor. Either both land or neither does.
func (r *Repository) ReplaceCurrentActivity(ctx context.Context, ended, next domain.Activity) error {
	if ended.Status.IsOpen() {
		return fmt.Errorf("replace current: predecessor %s still open: %w", ended.Guid, app.ErrActivityAlreadyActive)
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if err := updateActivityTx(ctx, tx, ended); err != nil {
			return err
		}
		return insertActivityTx(ctx, tx, next)
	})
}

// UpdateActivity rewrites an activity with its intermissions and tag links.
func (r *Repository) UpdateActivity(ctx context.Context, activity domain.Activity) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return updateActivityTx(ctx, tx, activity)
	})
}

// GetActivity returns one activity with intermissions and tags attached.
func (r *Repository) GetActivity(ctx context.Context, guid domain.Guid) (domain.Activity, error) {
	return getActivity(ctx, r.db, `WHERE a.guid = ?`, guid.String())
}

// CurrentActivity returns the single activity in active or held status.
func (r *Repository) CurrentActivity(ctx context.Context) (domain.Activity, error) {
	activity, err := getActivity(ctx, r.db, `WHERE a.status IN ('active', 'held')`)
	if errors.Is(err, app.ErrNotFound) {
		return domain.Activity{}, app.ErrNoCurrentActivity
	}
	return activity, err
}

// ListActivities returns the full history ordered by begin time.
func (r *Repository) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx, activitySelect+` ORDER BY a.begin_time ASC, a.guid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Activity{}
	for rows.Next() {
		row, err := scanActivityRow(rows)
		if err != nil {
			return nil, err
		}
		activity, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := attachRelations(ctx, r.db, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DeleteActivity removes an activity; intermissions and tag join rows go
// with it via ON DELETE CASCADE.
func (r *Repository) DeleteActivity(ctx context.Context, guid domain.Guid) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE guid = ?`, guid.String())
		if err != nil {
			return translateConstraint(err)
		}
		return translateNoRows(res)
	})
}

// getActivity loads a single activity matching the WHERE clause.
func getActivity(ctx context.Context, q dbtx, where string, args ...any) (domain.Activity, error) {
	row, err := scanActivityRow(q.QueryRowContext(ctx, activitySelect+where, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Activity{}, app.ErrNotFound
		}
		return domain.Activity{}, err
	}
	activity, err := row.toDomain()
	if err != nil {
		return domain.Activity{}, err
	}
	if err := attachRelations(ctx, q, &activity); err != nil {
		return domain.Activity{}, err
	}
	return activity, nil
}

// attachRelations loads intermissions and tag names onto an activity.
func attachRelations(ctx context.Context, q dbtx, activity *domain.Activity) error {
	rows, err := q.QueryContext(ctx, `
		SELECT guid, activity_guid, begin_time, end_time, reason
		FROM intermissions
		WHERE activity_guid = ?
		ORDER BY begin_time ASC, guid ASC
	`, activity.Guid.String())
	if err != nil {
		return err
	}
	defer rows.Close()

	intermissions := []domain.Intermission{}
	for rows.Next() {
		row, err := scanIntermissionRow(rows)
		if err != nil {
			return err
		}
		intermission, err := row.toDomain()
		if err != nil {
			return err
		}
		intermissions = append(intermissions, intermission)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	activity.Intermissions = intermissions

	tagRows, err := q.QueryContext(ctx, `
		SELECT t.name
		FROM activities_tags at
		JOIN tags t ON t.guid = at.tag_guid
		WHERE at.activity_guid = ?
		ORDER BY t.name ASC
	`, activity.Guid.String())
	if err != nil {
		return err
	}
	defer tagRows.Close()

	tags := []string{}
	for tagRows.Next() {
		var name string
		if err := tagRows.Scan(&name); err != nil {
			return err
		}
		tags = append(tags, name)
	}
	if err := tagRows.Err(); err != nil {
		return err
	}
	activity.Tags = tags
	return nil
}

// insertActivityTx writes a new activity inside an open transaction,
// enforcing the current-activity invariant with a check-then-write. The
// partial unique index backs the check against concurrent external writers.
func insertActivityTx(ctx context.Context, tx *sql.Tx, activity domain.Activity) error {
	if activity.Status.IsOpen() {
		var openGuid string
		err := tx.QueryRowContext(ctx,
			`SELECT guid FROM activities WHERE status IN ('active', 'held') LIMIT 1`,
		).Scan(&openGuid)
		switch {
		case err == nil:
			return fmt.Errorf("activity %s: %w", openGuid, app.ErrActivityAlreadyActive)
		case errors.Is(err, sql.ErrNoRows):
			// No open activity, proceed.
		default:
			return err
		}
	}

	descriptionGuid, err := ensureDescription(ctx, tx, activity.Description)
	if err != nil {
		return err
	}
	categoryGuid, err := ensureCategory(ctx, tx, activity.Category)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO activities(guid, description_guid, category_guid, begin_time, end_time, duration, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		activity.Guid.String(),
		descriptionGuid,
		categoryGuid,
		ts(activity.Begin),
		nullableTS(activity.End),
		nullableSeconds(activity.Duration),
		string(activity.Status),
	)
	if err != nil {
		return translateConstraint(err)
	}

	if err := syncIntermissions(ctx, tx, activity); err != nil {
		return err
	}
	return syncTagLinks(ctx, tx, activity)
}

// updateActivityTx rewrites an existing activity inside an open transaction.
func updateActivityTx(ctx context.Context, tx *sql.Tx, activity domain.Activity) error {
	descriptionGuid, err := ensureDescription(ctx, tx, activity.Description)
	if err != nil {
		return err
	}
	categoryGuid, err := ensureCategory(ctx, tx, activity.Category)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE activities
		SET description_guid = ?, category_guid = ?, begin_time = ?, end_time = ?, duration = ?, status = ?
		WHERE guid = ?
	`,
		descriptionGuid,
		categoryGuid,
		ts(activity.Begin),
		nullableTS(activity.End),
		nullableSeconds(activity.Duration),
		string(activity.Status),
		activity.Guid.String(),
	)
	if err != nil {
		return translateConstraint(err)
	}
	if err := translateNoRows(res); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM intermissions WHERE activity_guid = ?`, activity.Guid.String()); err != nil {
		return err
	}
	if err := syncIntermissions(ctx, tx, activity); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM activities_tags WHERE activity_guid = ?`, activity.Guid.String()); err != nil {
		return err
	}
	return syncTagLinks(ctx, tx, activity)
}

// syncIntermissions inserts the activity's intermission records.
func syncIntermissions(ctx context.Context, tx *sql.Tx, activity domain.Activity) error {
	for _, intermission := range activity.Intermissions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO intermissions(guid, activity_guid, begin_time, end_time, reason)
			VALUES (?, ?, ?, ?, ?)
		`,
			intermission.Guid.String(),
			activity.Guid.String(),
			ts(intermission.Begin),
			nullableTS(intermission.End),
			nullableText(intermission.Reason),
		)
		if err != nil {
			return translateConstraint(err)
		}
	}
	return nil
}

// syncTagLinks resolves tag names to lookup rows and inserts the join rows.
func syncTagLinks(ctx context.Context, tx *sql.Tx, activity domain.Activity) error {
	for _, name := range domain.NormalizeTags(activity.Tags) {
		tagGuid, err := ensureTag(ctx, tx, name)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO activities_tags(activity_guid, tag_guid) VALUES (?, ?)
		`, activity.Guid.String(), tagGuid)
		if err != nil {
			return translateConstraint(err)
		}
	}
	return nil
}

// ensureDescription finds or creates the deduplicated description row.
func ensureDescription(ctx context.Context, tx *sql.Tx, content string) (string, error) {
	return findOrCreateLookup(ctx, tx,
		`SELECT guid FROM descriptions WHERE content = ?`,
		`INSERT INTO descriptions(guid, content) VALUES (?, ?)`,
		content,
	)
}

// ensureCategory finds or creates the category row; empty means NULL.
func ensureCategory(ctx context.Context, tx *sql.Tx, name string) (any, error) {
	if name == "" {
		return nil, nil
	}
	return findOrCreateLookup(ctx, tx,
		`SELECT guid FROM categories WHERE name = ?`,
		`INSERT INTO categories(guid, name) VALUES (?, ?)`,
		name,
	)
}

// ensureTag finds or creates the tag row.
func ensureTag(ctx context.Context, tx *sql.Tx, name string) (string, error) {
	return findOrCreateLookup(ctx, tx,
		`SELECT guid FROM tags WHERE name = ?`,
		`INSERT INTO tags(guid, name) VALUES (?, ?)`,
		name,
	)
}

// findOrCreateLookup resolves text to the guid of its lookup row, creating
// the row on first use. Runs inside the caller's transaction so the dedup is
// atomic with the activity write.
func findOrCreateLookup(ctx context.Context, tx *sql.Tx, selectQuery, insertQuery, value string) (string, error) {
	var guid string
	err := tx.QueryRowContext(ctx, selectQuery, value).Scan(&guid)
	switch {
	case err == nil:
		return guid, nil
	case errors.Is(err, sql.ErrNoRows):
		guid = domain.NewGuid().String()
		if _, err := tx.ExecContext(ctx, insertQuery, guid, value); err != nil {
			return "", translateConstraint(err)
		}
		return guid, nil
	default:
		return "", err
	}
}

// translateNoRows maps a zero-row write to app.ErrNotFound.
func translateNoRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return app.ErrNotFound
	}
	return nil
}

// translateConstraint maps SQLite constraint failures onto the typed errors
// callers branch on.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "idx_activities_current") {
		return fmt.Errorf("%v: %w", err, app.ErrActivityAlreadyActive)
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%v: %w", err, app.ErrReferentialIntegrity)
	}
	return err
}
