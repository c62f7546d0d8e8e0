package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pace-rs/pace/internal/app"
	"github.com/pace-rs/pace/internal/domain"
)

// CRUD for the deduplicated lookup entities. Reads distinguish absence
// (app.ErrNotFound) from hard failures; deletes respect the relations that
// reference these rows.

// CreateCategory creates a category row.
func (r *Repository) CreateCategory(ctx context.Context, category domain.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories(guid, name) VALUES (?, ?)`,
		category.Guid.String(), category.Name,
	)
	return translateConstraint(err)
}

// GetCategory returns one category by guid.
func (r *Repository) GetCategory(ctx context.Context, guid domain.Guid) (domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT guid, name FROM categories WHERE guid = ?`, guid.String())
	return scanCategory(row)
}

// ListCategories lists all categories by name.
func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT guid, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, category)
	}
	return out, rows.Err()
}

// UpdateCategory renames a category.
func (r *Repository) UpdateCategory(ctx context.Context, category domain.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ? WHERE guid = ?`,
		category.Name, category.Guid.String(),
	)
	if err != nil {
		return translateConstraint(err)
	}
	return translateNoRows(res)
}

// DeleteCategory removes a category. A category still referenced by an
// activity fails with app.ErrReferentialIntegrity.
func (r *Repository) DeleteCategory(ctx context.Context, guid domain.Guid) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var count int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM activities WHERE category_guid = ?`, guid.String(),
		).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("category %s referenced by %d activities: %w", guid, count, app.ErrReferentialIntegrity)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE guid = ?`, guid.String())
		if err != nil {
			return translateConstraint(err)
		}
		return translateNoRows(res)
	})
}

// CreateTag creates a tag row.
func (r *Repository) CreateTag(ctx context.Context, tag domain.Tag) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags(guid, name) VALUES (?, ?)`,
		tag.Guid.String(), tag.Name,
	)
	return translateConstraint(err)
}

// GetTag returns one tag by guid.
func (r *Repository) GetTag(ctx context.Context, guid domain.Guid) (domain.Tag, error) {
	row := r.db.QueryRowContext(ctx, `SELECT guid, name FROM tags WHERE guid = ?`, guid.String())
	return scanTag(row)
}

// ListTags lists all tags by name.
func (r *Repository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT guid, name FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

// UpdateTag renames a tag.
func (r *Repository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tags SET name = ? WHERE guid = ?`,
		tag.Name, tag.Guid.String(),
	)
	if err != nil {
		return translateConstraint(err)
	}
	return translateNoRows(res)
}

// DeleteTag removes a tag under the configured TagDeletePolicy: cascade
// removes the activity links first, restrict fails while links exist.
func (r *Repository) DeleteTag(ctx context.Context, guid domain.Guid) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var count int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM activities_tags WHERE tag_guid = ?`, guid.String(),
		).Scan(&count); err != nil {
			return err
		}

		if count > 0 {
			switch r.tagPolicy {
			case app.TagDeleteRestrict:
				return fmt.Errorf("tag %s referenced by %d activities: %w", guid, count, app.ErrReferentialIntegrity)
			case app.TagDeleteCascade:
				if _, err := tx.ExecContext(ctx, `DELETE FROM activities_tags WHERE tag_guid = ?`, guid.String()); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%q: %w", r.tagPolicy, app.ErrInvalidTagPolicy)
			}
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE guid = ?`, guid.String())
		if err != nil {
			return translateConstraint(err)
		}
		return translateNoRows(res)
	})
}

// CreateDescription creates a description row.
func (r *Repository) CreateDescription(ctx context.Context, description domain.Description) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO descriptions(guid, content) VALUES (?, ?)`,
		description.Guid.String(), description.Content,
	)
	return translateConstraint(err)
}

// GetDescription returns one description by guid.
func (r *Repository) GetDescription(ctx context.Context, guid domain.Guid) (domain.Description, error) {
	row := r.db.QueryRowContext(ctx, `SELECT guid, content FROM descriptions WHERE guid = ?`, guid.String())
	return scanDescription(row)
}

// ListDescriptions lists all descriptions by content.
func (r *Repository) ListDescriptions(ctx context.Context) ([]domain.Description, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT guid, content FROM descriptions ORDER BY content ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Description{}
	for rows.Next() {
		description, err := scanDescription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, description)
	}
	return out, rows.Err()
}

// UpdateDescription rewrites a description's content.
func (r *Repository) UpdateDescription(ctx context.Context, description domain.Description) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE descriptions SET content = ? WHERE guid = ?`,
		description.Content, description.Guid.String(),
	)
	if err != nil {
		return translateConstraint(err)
	}
	return translateNoRows(res)
}

// DeleteDescription removes a description. Descriptions referenced by an
// activity fail with app.ErrReferentialIntegrity.
func (r *Repository) DeleteDescription(ctx context.Context, guid domain.Guid) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var count int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM activities WHERE description_guid = ?`, guid.String(),
		).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("description %s referenced by %d activities: %w", guid, count, app.ErrReferentialIntegrity)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM descriptions WHERE guid = ?`, guid.String())
		if err != nil {
			return translateConstraint(err)
		}
		return translateNoRows(res)
	})
}

// scanCategory reads one categories row.
func scanCategory(s scanner) (domain.Category, error) {
	var guidRaw, name string
	if err := s.Scan(&guidRaw, &name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, app.ErrNotFound
		}
		return domain.Category{}, err
	}
	guid, err := domain.ParseGuid(guidRaw)
	if err != nil {
		return domain.Category{}, malformed("categories.guid", err)
	}
	return domain.Category{Guid: guid, Name: name}, nil
}

// scanTag reads one tags row.
func scanTag(s scanner) (domain.Tag, error) {
	var guidRaw, name string
	if err := s.Scan(&guidRaw, &name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tag{}, app.ErrNotFound
		}
		return domain.Tag{}, err
	}
	guid, err := domain.ParseGuid(guidRaw)
	if err != nil {
		return domain.Tag{}, malformed("tags.guid", err)
	}
	return domain.Tag{Guid: guid, Name: name}, nil
}

// scanDescription reads one descriptions row.
func scanDescription(s scanner) (domain.Description, error) {
	var guidRaw, content string
	if err := s.Scan(&guidRaw, &content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Description{}, app.ErrNotFound
		}
		return domain.Description{}, err
	}
	guid, err := domain.ParseGuid(guidRaw)
	if err != nil {
		return domain.Description{}, malformed("descriptions.guid", err)
	}
	return domain.Description{Guid: guid, Content: content}, nil
}
