package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pace-rs/pace/internal/app"
	"github.com/pace-rs/pace/internal/domain"
)

// Row⇄entity mapping is explicit and total: every column has a conversion in
// both directions, and an unexpected null or unparsable value surfaces as
// app.ErrMalformedRow instead of a panic or a zero value.

// activityRow mirrors the activities table.
type activityRow struct {
	guid            string
	descriptionText string
	categoryName    sql.NullString
	begin           string
	end             sql.NullString
	duration        sql.NullInt64
	status          string
}

// scanner represents the shared Scan contract of sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanActivityRow reads one joined activities row.
func scanActivityRow(s scanner) (activityRow, error) {
	var row activityRow
	err := s.Scan(&row.guid, &row.descriptionText, &row.categoryName, &row.begin, &row.end, &row.duration, &row.status)
	return row, err
}

// toDomain converts a stored row into a domain activity without its
// intermissions and tags; the caller attaches those.
func (row activityRow) toDomain() (domain.Activity, error) {
	guid, err := domain.ParseGuid(row.guid)
	if err != nil {
		return domain.Activity{}, malformed("activities.guid", err)
	}
	begin, err := domain.ParsePaceDateTime(row.begin)
	if err != nil {
		return domain.Activity{}, malformed("activities.begin", err)
	}
	status, err := domain.ParseActivityStatus(row.status)
	if err != nil {
		return domain.Activity{}, malformed("activities.status", err)
	}

	activity := domain.Activity{
		Guid:        guid,
		Description: row.descriptionText,
		Begin:       begin,
		Status:      status,
	}
	if row.categoryName.Valid {
		activity.Category = row.categoryName.String
	}
	if row.end.Valid {
		end, err := domain.ParsePaceDateTime(row.end.String)
		if err != nil {
			return domain.Activity{}, malformed("activities.end", err)
		}
		activity.End = &end
	}
	if row.duration.Valid {
		if row.duration.Int64 < 0 {
			return domain.Activity{}, malformed("activities.duration", fmt.Errorf("negative seconds %d", row.duration.Int64))
		}
		d := time.Duration(row.duration.Int64) * time.Second
		activity.Duration = &d
	}
	if activity.Status == domain.StatusEnded && activity.End == nil {
		return domain.Activity{}, malformed("activities.end", fmt.Errorf("ended activity without end"))
	}
	return activity, nil
}

// intermissionRow mirrors the intermissions table.
type intermissionRow struct {
	guid         string
	activityGuid string
	begin        string
	end          sql.NullString
	reason       sql.NullString
}

// scanIntermissionRow reads one intermissions row.
func scanIntermissionRow(s scanner) (intermissionRow, error) {
	var row intermissionRow
	err := s.Scan(&row.guid, &row.activityGuid, &row.begin, &row.end, &row.reason)
	return row, err
}

// toDomain converts a stored intermission row.
func (row intermissionRow) toDomain() (domain.Intermission, error) {
	guid, err := domain.ParseGuid(row.guid)
	if err != nil {
		return domain.Intermission{}, malformed("intermissions.guid", err)
	}
	activityGuid, err := domain.ParseGuid(row.activityGuid)
	if err != nil {
		return domain.Intermission{}, malformed("intermissions.activity_guid", err)
	}
	begin, err := domain.ParsePaceDateTime(row.begin)
	if err != nil {
		return domain.Intermission{}, malformed("intermissions.begin", err)
	}

	intermission := domain.Intermission{
		Guid:         guid,
		ActivityGuid: activityGuid,
		Begin:        begin,
	}
	if row.end.Valid {
		end, err := domain.ParsePaceDateTime(row.end.String)
		if err != nil {
			return domain.Intermission{}, malformed("intermissions.end", err)
		}
		intermission.End = &end
	}
	if row.reason.Valid {
		intermission.Reason = row.reason.String
	}
	return intermission, nil
}

// ts renders a timestamp in its stored RFC 3339 form, offset preserved.
func ts(t domain.PaceDateTime) string {
	return t.String()
}

// nullableTS renders an optional timestamp.
func nullableTS(t *domain.PaceDateTime) any {
	if t == nil {
		return nil
	}
	return t.String()
}

// nullableSeconds renders an optional duration as integer seconds.
func nullableSeconds(d *time.Duration) any {
	if d == nil {
		return nil
	}
	return int64(*d / time.Second)
}

// nullableText renders an optional string, mapping empty to NULL.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// malformed wraps a column conversion failure as app.ErrMalformedRow.
func malformed(column string, err error) error {
	return fmt.Errorf("%s: %v: %w", column, err, app.ErrMalformedRow)
}
