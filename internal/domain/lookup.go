package domain

import (
	"slices"
	"strings"
)

// Category, Tag and Description are deduplicated lookup entities. Activities
// reference them by guid in storage; the same text always resolves to the
// same row.

type Category struct {
	Guid Guid
	Name string
}

// NewCategory creates a category lookup entity.
func NewCategory(guid Guid, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if guid.IsZero() {
		return Category{}, ErrInvalidGuid
	}
	if name == "" {
		return Category{}, ErrInvalidCategory
	}
	return Category{Guid: guid, Name: name}, nil
}

type Tag struct {
	Guid Guid
	Name string
}

// NewTag creates a tag lookup entity. Tag names are case-insensitive.
func NewTag(guid Guid, name string) (Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if guid.IsZero() {
		return Tag{}, ErrInvalidGuid
	}
	if name == "" {
		return Tag{}, ErrInvalidTag
	}
	return Tag{Guid: guid, Name: name}, nil
}

type Description struct {
	Guid    Guid
	Content string
}

// NewDescription creates a description lookup entity.
func NewDescription(guid Guid, content string) (Description, error) {
	content = strings.TrimSpace(content)
	if guid.IsZero() {
		return Description{}, ErrInvalidGuid
	}
	if content == "" {
		return Description{}, ErrInvalidDescription
	}
	return Description{Guid: guid, Content: content}, nil
}

// NormalizeTags lowercases, trims, dedups and sorts tag names so tag set
// membership is insensitive to insertion order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, raw := range tags {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}
