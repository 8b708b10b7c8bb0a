// Package settings defines the persisted, process-wide user settings: field
// defaults, the audiobook cover preference, and the category mapping graph
// with its ignore set.
package settings

import (
	"context"

	"github.com/listenupapp/bookpage/internal/domain"
)

// Preferences stores per-field source defaults and the cover switch.
// Writes overwrite the previous value for the key.
type Preferences interface {
	// GetFieldDefault returns the stored default for field. ok is false when
	// nothing is stored or the stored value no longer parses.
	GetFieldDefault(ctx context.Context, field domain.Field) (src domain.SourceID, ok bool, err error)
	SetFieldDefault(ctx context.Context, field domain.Field, source domain.SourceID) error
	ListFieldDefaults(ctx context.Context) ([]domain.FieldDefault, error)

	PreferAudiobookCovers(ctx context.Context) (bool, error)
	SetPreferAudiobookCovers(ctx context.Context, prefer bool) error
}

// Categories stores the tag mapping graph and the ignore set.
// Tags are stored in canonical form.
type Categories interface {
	// MapTag creates or replaces the outbound edge of from.
	MapTag(ctx context.Context, from, to string) error
	// UnmapTag removes the outbound edge of from. Missing edges are not an error.
	UnmapTag(ctx context.Context, from string) error
	IgnoreTag(ctx context.Context, tag string) error
	UnignoreTag(ctx context.Context, tag string) error
	// CategoryRules returns a snapshot of the graph and the ignore set.
	CategoryRules(ctx context.Context) (*domain.CategoryRules, error)
}

// Repository is the full settings store.
type Repository interface {
	Preferences
	Categories
}

// Setting keys shared by the persistent backends.
const (
	FlagPreferAudiobookCovers = "prefer_audiobook_covers"
)

// ParseStoredSource parses a persisted source ID. Unparseable values are
// reported as absent so stale data never breaks a session.
func ParseStoredSource(raw string) (domain.SourceID, bool) {
	src, err := domain.ParseSourceID(raw)
	if err != nil {
		return domain.SourceID{}, false
	}
	return src, true
}
