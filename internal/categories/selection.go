package categories

import (
	"slices"

	domainerrors "github.com/listenupapp/bookpage/internal/errors"
)

// Selection is the ordered set of tags chosen for publishing. An ignored tag
// is never selected.
type Selection struct {
	tags []string
	seen map[string]bool
}

// NewSelection returns an empty selection. The first Sync selects every
// non-ignored tag.
func NewSelection() *Selection {
	return &Selection{seen: make(map[string]bool)}
}

// Sync reconciles the selection with a new normalization result. Tags that
// vanished or became ignored are dropped. Tags never seen before are
// appended; tags the user deselected earlier stay deselected.
func (s *Selection) Sync(res Result) {
	s.tags = slices.DeleteFunc(s.tags, func(tag string) bool {
		return !res.Selectable(tag)
	})
	for _, tag := range res.SelectableTags() {
		if s.seen[tag] {
			continue
		}
		s.seen[tag] = true
		if !slices.Contains(s.tags, tag) {
			s.tags = append(s.tags, tag)
		}
	}
}

// Set selects or deselects tag. Unknown tags are NotFound; selecting an
// ignored tag is a Conflict.
func (s *Selection) Set(res Result, tag string, selected bool) error {
	if !res.Has(tag) {
		return domainerrors.NotFoundf("category %q not found", tag)
	}
	if !selected {
		s.Remove(tag)
		return nil
	}
	if !res.Selectable(tag) {
		return domainerrors.Conflictf("category %q is ignored", tag)
	}
	s.seen[tag] = true
	if !slices.Contains(s.tags, tag) {
		s.tags = append(s.tags, tag)
	}
	return nil
}

// Remove deselects tag if present.
func (s *Selection) Remove(tag string) {
	s.tags = slices.DeleteFunc(s.tags, func(t string) bool { return t == tag })
}

// Contains reports whether tag is selected.
func (s *Selection) Contains(tag string) bool {
	return slices.Contains(s.tags, tag)
}

// Tags returns the selected tags in order.
func (s *Selection) Tags() []string {
	return append([]string{}, s.tags...)
}
