package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/listenupapp/bookpage/internal/domain"
	"github.com/listenupapp/bookpage/internal/settings"
)

var _ settings.Repository = (*Store)(nil)

type fieldDefaultRecord struct {
	SourceID  string    `json:"source_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type flagRecord struct {
	Value     bool      `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type mappingRecord struct {
	To        string    `json:"to"`
	CreatedAt time.Time `json:"created_at"`
}

type ignoredRecord struct {
	CreatedAt time.Time `json:"created_at"`
}

// GetFieldDefault returns the stored default source for field.
func (s *Store) GetFieldDefault(_ context.Context, field domain.Field) (domain.SourceID, bool, error) {
	key := buildKey(prefixFieldDefault, string(field))
	defer releaseKey(key)

	var rec fieldDefaultRecord
	if err := s.get(key, &rec); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.SourceID{}, false, nil
		}
		return domain.SourceID{}, false, fmt.Errorf("get field default %s: %w", field, err)
	}

	src, ok := settings.ParseStoredSource(rec.SourceID)
	if !ok {
		s.logger.Warn("ignoring unparseable field default", "field", field, "source_id", rec.SourceID)
	}
	return src, ok, nil
}

// SetFieldDefault stores the default source for field.
func (s *Store) SetFieldDefault(_ context.Context, field domain.Field, source domain.SourceID) error {
	key := buildKey(prefixFieldDefault, string(field))
	defer releaseKey(key)

	if err := s.set(key, fieldDefaultRecord{SourceID: source.String(), UpdatedAt: time.Now().UTC()}); err != nil {
		return fmt.Errorf("set field default %s: %w", field, err)
	}
	return nil
}

// ListFieldDefaults returns every parseable stored default in field order.
func (s *Store) ListFieldDefaults(_ context.Context) ([]domain.FieldDefault, error) {
	stored := make(map[domain.Field]domain.SourceID)
	err := s.scanPrefix(prefixFieldDefault, func(suffix string, val []byte) error {
		var rec fieldDefaultRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		if src, ok := settings.ParseStoredSource(rec.SourceID); ok {
			stored[domain.Field(suffix)] = src
		}
		return nil
	})
	if err != nil {
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
func (s *Store) PreferAudiobookCovers(_ context.Context) (bool, error) {
	key := buildKey(prefixFlag, settings.FlagPreferAudiobookCovers)
	defer releaseKey(key)

	var rec flagRecord
	if err := s.get(key, &rec); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get cover preference: %w", err)
	}
	return rec.Value, nil
}

// SetPreferAudiobookCovers stores the cover switch.
func (s *Store) SetPreferAudiobookCovers(_ context.Context, prefer bool) error {
	key := buildKey(prefixFlag, settings.FlagPreferAudiobookCovers)
	defer releaseKey(key)

	if err := s.set(key, flagRecord{Value: prefer, UpdatedAt: time.Now().UTC()}); err != nil {
		return fmt.Errorf("set cover preference: %w", err)
	}
	return nil
}

// MapTag creates or replaces the outbound edge of from.
func (s *Store) MapTag(_ context.Context, from, to string) error {
	key := buildKey(prefixMapping, from)
	defer releaseKey(key)

	if err := s.set(key, mappingRecord{To: to, CreatedAt: time.Now().UTC()}); err != nil {
		return fmt.Errorf("map tag %q: %w", from, err)
	}
	return nil
}

// UnmapTag removes the outbound edge of from.
func (s *Store) UnmapTag(_ context.Context, from string) error {
	key := buildKey(prefixMapping, from)
	defer releaseKey(key)

	if err := s.delete(key); err != nil {
		return fmt.Errorf("unmap tag %q: %w", from, err)
	}
	return nil
}

// IgnoreTag adds tag to the ignore set. Ignoring twice keeps the first timestamp.
func (s *Store) IgnoreTag(_ context.Context, tag string) error {
	key := buildKey(prefixIgnored, tag)
	defer releaseKey(key)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("ignore tag %q: %w", tag, err)
	}
	if exists {
		return nil
	}
	if err := s.set(key, ignoredRecord{CreatedAt: time.Now().UTC()}); err != nil {
		return fmt.Errorf("ignore tag %q: %w", tag, err)
	}
	return nil
}

// UnignoreTag removes tag from the ignore set.
func (s *Store) UnignoreTag(_ context.Context, tag string) error {
	key := buildKey(prefixIgnored, tag)
	defer releaseKey(key)

	if err := s.delete(key); err != nil {
		return fmt.Errorf("unignore tag %q: %w", tag, err)
	}
	return nil
}

// CategoryRules loads the whole mapping graph and ignore set.
func (s *Store) CategoryRules(_ context.Context) (*domain.CategoryRules, error) {
	rules := domain.NewCategoryRules()

	err := s.scanPrefix(prefixMapping, func(from string, val []byte) error {
		var rec mappingRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		rules.Mappings[from] = rec.To
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load tag mappings: %w", err)
	}

	err = s.scanPrefix(prefixIgnored, func(tag string, _ []byte) error {
		rules.Ignored[tag] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load ignored tags: %w", err)
	}

	return rules, nil
}
