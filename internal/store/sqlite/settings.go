package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/listenupapp/bookpage/internal/domain"
	"github.com/listenupapp/bookpage/internal/settings"
)

var _ settings.Repository = (*Store)(nil)

// GetFieldDefault returns the stored default source for field.
// A stored value that no longer parses is reported as absent.
func (s *Store) GetFieldDefault(ctx context.Context, field domain.Field) (domain.SourceID, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT source_id FROM field_defaults WHERE field = ?`, string(field)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SourceID{}, false, nil
	}
	if err != nil {
		return domain.SourceID{}, false, fmt.Errorf("get field default %s: %w", field, err)
	}

	src, ok := settings.ParseStoredSource(raw)
	if !ok {
		s.logger.Warn("ignoring unparseable field default", "field", field, "source_id", raw)
	}
	return src, ok, nil
}

// SetFieldDefault creates or replaces the default source for field.
func (s *Store) SetFieldDefault(ctx context.Context, field domain.Field, source domain.SourceID) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO field_defaults (field, source_id, updated_at)
		VALUES (?, ?, ?)`,
		string(field), source.String(), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("set field default %s: %w", field, err)
	}
	return nil
}

// ListFieldDefaults returns every parseable stored default in field order.
func (s *Store) ListFieldDefaults(ctx context.Context) ([]domain.FieldDefault, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT field, source_id FROM field_defaults`)
	if err != nil {
		return nil, fmt.Errorf("list field defaults: %w", err)
	}
	defer rows.Close()

	stored := make(map[domain.Field]domain.SourceID)
	for rows.Next() {
		var field, raw string
		if err := rows.Scan(&field, &raw); err != nil {
			return nil, fmt.Errorf("scan field default: %w", err)
		}
		if src, ok := settings.ParseStoredSource(raw); ok {
			stored[domain.Field(field)] = src
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list field defaults: %w", err)
	}

	out := make([]domain.FieldDefault, 0, len(stored))
	for _, field := range domain.AllFields() {
		if src, ok := stored[field]; ok {
			out = append(out, domain.FieldDefault{Field: field, Source: src})
		}
	}
	return out, nil
}

// PreferAudiobookCovers returns the cover switch, false when unset.
func (s *Store) PreferAudiobookCovers(ctx context.Context) (bool, error) {
	var value int
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preference_flags WHERE name = ?`,
		settings.FlagPreferAudiobookCovers).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get cover preference: %w", err)
	}
	return value != 0, nil
}

// SetPreferAudiobookCovers stores the cover switch.
func (s *Store) SetPreferAudiobookCovers(ctx context.Context, prefer bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO preference_flags (name, value, updated_at)
		VALUES (?, ?, ?)`,
		settings.FlagPreferAudiobookCovers, boolToInt(prefer), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("set cover preference: %w", err)
	}
	return nil
}

// MapTag creates or replaces the outbound edge of from.
func (s *Store) MapTag(ctx context.Context, from, to string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tag_mappings (from_tag, to_tag, created_at)
		VALUES (?, ?, ?)`,
		from, to, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("map tag %q: %w", from, err)
	}
	return nil
}

// UnmapTag removes the outbound edge of from.
func (s *Store) UnmapTag(ctx context.Context, from string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tag_mappings WHERE from_tag = ?`, from); err != nil {
		return fmt.Errorf("unmap tag %q: %w", from, err)
	}
	return nil
}

// IgnoreTag adds tag to the ignore set. Ignoring twice keeps the first timestamp.
func (s *Store) IgnoreTag(ctx context.Context, tag string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO ignored_tags (tag, created_at) VALUES (?, ?)`,
		tag, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("ignore tag %q: %w", tag, err)
	}
	return nil
}

// UnignoreTag removes tag from the ignore set.
func (s *Store) UnignoreTag(ctx context.Context, tag string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ignored_tags WHERE tag = ?`, tag); err != nil {
		return fmt.Errorf("unignore tag %q: %w", tag, err)
	}
	return nil
}

// CategoryRules loads the whole mapping graph and ignore set.
func (s *Store) CategoryRules(ctx context.Context) (*domain.CategoryRules, error) {
	rules := domain.NewCategoryRules()

	rows, err := s.db.QueryContext(ctx, `SELECT from_tag, to_tag FROM tag_mappings`)
	if err != nil {
		return nil, fmt.Errorf("load tag mappings: %w", err)
	}
	for rows.Next() {
		var from, to string
		if err := rows.Scan(&from, &to); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan tag mapping: %w", err)
		}
		rules.Mappings[from] = to
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load tag mappings: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT tag FROM ignored_tags`)
	if err != nil {
		return nil, fmt.Errorf("load ignored tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan ignored tag: %w", err)
		}
		rules.Ignored[tag] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load ignored tags: %w", err)
	}

	return rules, nil
}
