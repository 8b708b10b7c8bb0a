package store

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookpage/internal/domain"
	"github.com/listenupapp/bookpage/internal/settings"
	"github.com/listenupapp/bookpage/internal/settings/settingstest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Settings(t *testing.T) {
	settingstest.Run(t, func(t *testing.T) settings.Repository {
		return newTestStore(t)
	})
}

func TestStore_InMemory(t *testing.T) {
	s, err := NewInMemory(nil)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.MapTag(ctx, "SF", "Science Fiction"))

	rules, err := s.CategoryRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", rules.Mappings["SF"])
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetFieldDefault(ctx, domain.FieldThumbnail, domain.Audiobook))
	require.NoError(t, s.IgnoreTag(ctx, "General"))
	require.NoError(t, s.Close())

	s, err = New(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	src, ok, err := s.GetFieldDefault(ctx, domain.FieldThumbnail)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.Audiobook, src)

	rules, err := s.CategoryRules(ctx)
	require.NoError(t, err)
	assert.True(t, rules.IsIgnored("General"))
}

func TestStore_StaleFieldDefaultIsAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	key := buildKey(prefixFieldDefault, string(domain.FieldPublisher))
	defer releaseKey(key)
	require.NoError(t, s.set(key, fieldDefaultRecord{SourceID: "goodreads"}))

	_, ok, err := s.GetFieldDefault(ctx, domain.FieldPublisher)
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := s.ListFieldDefaults(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_GetMissingKey(t *testing.T) {
	s := newTestStore(t)

	var rec flagRecord
	err := s.get([]byte("flag:nope"), &rec)
	assert.ErrorIs(t, err, badger.ErrKeyNotFound)
}
