// Package settingstest holds behavior tests shared by every settings.Repository
// backend.
package settingstest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookpage/internal/domain"
	"github.com/listenupapp/bookpage/internal/settings"
)

// Run exercises repo constructors returned by newRepo. Each subtest gets a
// fresh, empty repository.
func Run(t *testing.T, newRepo func(t *testing.T) settings.Repository) {
	t.Helper()

	t.Run("field default missing", func(t *testing.T) {
		repo := newRepo(t)
		_, ok, err := repo.GetFieldDefault(context.Background(), domain.FieldPublisher)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("field default last write wins", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.SetFieldDefault(ctx, domain.FieldPublisher, domain.Audiobook))
		require.NoError(t, repo.SetFieldDefault(ctx, domain.FieldPublisher, domain.Edition(2)))

		src, ok, err := repo.GetFieldDefault(ctx, domain.FieldPublisher)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, domain.Edition(2), src)
	})

	t.Run("list field defaults", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.SetFieldDefault(ctx, domain.FieldThumbnail, domain.Audiobook))
		require.NoError(t, repo.SetFieldDefault(ctx, domain.FieldDescription, domain.AudiobookSummary))

		list, err := repo.ListFieldDefaults(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.FieldDefault{
			{Field: domain.FieldDescription, Source: domain.AudiobookSummary},
			{Field: domain.FieldThumbnail, Source: domain.Audiobook},
		}, list)
	})

	t.Run("prefer audiobook covers", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		prefer, err := repo.PreferAudiobookCovers(ctx)
		require.NoError(t, err)
		assert.False(t, prefer)

		require.NoError(t, repo.SetPreferAudiobookCovers(ctx, true))
		prefer, err = repo.PreferAudiobookCovers(ctx)
		require.NoError(t, err)
		assert.True(t, prefer)

		require.NoError(t, repo.SetPreferAudiobookCovers(ctx, false))
		prefer, err = repo.PreferAudiobookCovers(ctx)
		require.NoError(t, err)
		assert.False(t, prefer)
	})

	t.Run("mapping graph", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.MapTag(ctx, "Sci-Fi", "Science Fiction"))
		require.NoError(t, repo.MapTag(ctx, "SF", "Sci-Fi"))
		require.NoError(t, repo.MapTag(ctx, "SF", "Science Fiction"))
		require.NoError(t, repo.UnmapTag(ctx, "Never Mapped"))

		rules, err := repo.CategoryRules(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"Sci-Fi": "Science Fiction",
			"SF":     "Science Fiction",
		}, rules.Mappings)

		require.NoError(t, repo.UnmapTag(ctx, "Sci-Fi"))
		rules, err = repo.CategoryRules(ctx)
		require.NoError(t, err)
		_, mapped := rules.Target("Sci-Fi")
		assert.False(t, mapped)
	})

	t.Run("ignore set", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.IgnoreTag(ctx, "General"))
		require.NoError(t, repo.IgnoreTag(ctx, "General"))
		require.NoError(t, repo.IgnoreTag(ctx, "Audiobook"))
		require.NoError(t, repo.UnignoreTag(ctx, "Audiobook"))

		rules, err := repo.CategoryRules(ctx)
		require.NoError(t, err)
		assert.True(t, rules.IsIgnored("General"))
		assert.False(t, rules.IsIgnored("Audiobook"))
		assert.Len(t, rules.Ignored, 1)
	})
}
