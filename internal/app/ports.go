package app

import (
	"context"

	"github.com/pace-rs/pace/internal/domain"
)

// TagDeletePolicy is the single switch deciding what happens when a tag that
// is still referenced by an activity is deleted.
type TagDeletePolicy string

const (
	// TagDeleteCascade removes the join rows along with the tag.
	TagDeleteCascade TagDeletePolicy = "cascade"

	// TagDeleteRestrict fails with ErrReferentialIntegrity while join rows
	// exist.
	TagDeleteRestrict TagDeletePolicy = "restrict"
)

// Valid reports whether the policy is a known value.
func (p TagDeletePolicy) Valid() bool {
	return p == TagDeleteCascade || p == TagDeleteRestrict
}

// Repository is the storage contract consumed by the lifecycle engine. Every
// method distinguishes absence (ErrNotFound, ErrNoCurrentActivity) from hard
// failures, and every multi-entity write runs in a single transaction: either
// all of it lands or none of it does.
type Repository interface {
	// CreateActivity inserts an activity together with its deduplicated
	// description/category/tag lookup rows and tag join rows. It fails with
	// ErrActivityAlreadyActive when another open activity exists.
	CreateActivity(context.Context, domain.Activity) error
	// ReplaceCurrentActivity atomically ends the current activity and
	// creates its successor. Used by force-begin.
	ReplaceCurrentActivity(ctx context.Context, ended, next domain.Activity) error
	UpdateActivity(context.Context, domain.Activity) error
	GetActivity(context.Context, domain.Guid) (domain.Activity, error)
	ListActivities(context.Context) ([]domain.Activity, error)
	// CurrentActivity returns the single activity in active or held status,
	// or ErrNoCurrentActivity.
	CurrentActivity(context.Context) (domain.Activity, error)
	// DeleteActivity removes an activity and cascades to its intermissions
	// and tag join rows.
	DeleteActivity(context.Context, domain.Guid) error

	CreateCategory(context.Context, domain.Category) error
	GetCategory(context.Context, domain.Guid) (domain.Category, error)
	ListCategories(context.Context) ([]domain.Category, error)
	UpdateCategory(context.Context, domain.Category) error
	DeleteCategory(context.Context, domain.Guid) error

	CreateTag(context.Context, domain.Tag) error
	GetTag(context.Context, domain.Guid) (domain.Tag, error)
	ListTags(context.Context) ([]domain.Tag, error)
	UpdateTag(context.Context, domain.Tag) error
	// DeleteTag honors the configured TagDeletePolicy.
	DeleteTag(context.Context, domain.Guid) error

	CreateDescription(context.Context, domain.Description) error
	GetDescription(context.Context, domain.Guid) (domain.Description, error)
	ListDescriptions(context.Context) ([]domain.Description, error)
	UpdateDescription(context.Context, domain.Description) error
	DeleteDescription(context.Context, domain.Guid) error
}
