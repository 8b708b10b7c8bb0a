package settings

import (
	"context"
	"maps"
	"sync"

	"github.com/listenupapp/bookpage/internal/domain"
)

// Memory is an in-process Repository. It is used by tests and by the
// "memory" store backend.
type Memory struct {
	mu           sync.RWMutex
	defaults     map[domain.Field]domain.SourceID
	preferCovers bool
	mappings     map[string]string
	ignored      map[string]bool
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		defaults: make(map[domain.Field]domain.SourceID),
		mappings: make(map[string]string),
		ignored:  make(map[string]bool),
	}
}

var _ Repository = (*Memory)(nil)

// GetFieldDefault returns the stored default source for field.
func (m *Memory) GetFieldDefault(_ context.Context, field domain.Field) (domain.SourceID, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src, ok := m.defaults[field]
	return src, ok, nil
}

// SetFieldDefault creates or replaces the default source for field.
func (m *Memory) SetFieldDefault(_ context.Context, field domain.Field, source domain.SourceID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults[field] = source
	return nil
}

// ListFieldDefaults returns every stored default in field order.
func (m *Memory) ListFieldDefaults(_ context.Context) ([]domain.FieldDefault, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.FieldDefault, 0, len(m.defaults))
	for _, field := range domain.AllFields() {
		if src, ok := m.defaults[field]; ok {
			out = append(out, domain.FieldDefault{Field: field, Source: src})
		}
	}
	return out, nil
}

// PreferAudiobookCovers returns the cover switch, false when unset.
func (m *Memory) PreferAudiobookCovers(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.preferCovers, nil
}

// SetPreferAudiobookCovers stores the cover switch.
func (m *Memory) SetPreferAudiobookCovers(_ context.Context, prefer bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preferCovers = prefer
	return nil
}

// MapTag creates or replaces the outbound edge of from.
func (m *Memory) MapTag(_ context.Context, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mappings[from] = to
	return nil
}

// UnmapTag removes the outbound edge of from.
func (m *Memory) UnmapTag(_ context.Context, from string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.mappings, from)
	return nil
}

// IgnoreTag adds tag to the ignore set.
func (m *Memory) IgnoreTag(_ context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ignored[tag] = true
	return nil
}

// UnignoreTag removes tag from the ignore set.
func (m *Memory) UnignoreTag(_ context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ignored, tag)
	return nil
}

// CategoryRules returns a copy of the mapping graph and ignore set.
func (m *Memory) CategoryRules(_ context.Context) (*domain.CategoryRules, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &domain.CategoryRules{
		Mappings: maps.Clone(m.mappings),
		Ignored:  maps.Clone(m.ignored),
	}, nil
}
