package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookpage/internal/domain"
	domainerrors "github.com/listenupapp/bookpage/internal/errors"
	"github.com/listenupapp/bookpage/internal/settings"
)

func TestSettingsService_FieldDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(settings.NewMemory(), nil)

	defaults, err := svc.ListFieldDefaults(ctx)
	require.NoError(t, err)
	assert.NotNil(t, defaults)
	assert.Empty(t, defaults)

	require.NoError(t, svc.SetFieldDefault(ctx, domain.FieldDescription, domain.AudiobookSummary))

	defaults, err = svc.ListFieldDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.FieldDefault{{Field: domain.FieldDescription, Source: domain.AudiobookSummary}}, defaults)

	err = svc.SetFieldDefault(ctx, domain.Field("series"), domain.Original)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestSettingsService_Covers(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(settings.NewMemory(), nil)

	prefer, err := svc.PreferAudiobookCovers(ctx)
	require.NoError(t, err)
	assert.False(t, prefer)

	require.NoError(t, svc.SetPreferAudiobookCovers(ctx, true))

	prefer, err = svc.PreferAudiobookCovers(ctx)
	require.NoError(t, err)
	assert.True(t, prefer)
}

func TestSettingsService_CategoryRules(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(settings.NewMemory(), nil)

	m, err := svc.MapTag(ctx, "  sci-fi ", "science fiction")
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", m.To)

	require.NoError(t, svc.IgnoreTag(ctx, "audiobooks"))

	rules, err := svc.CategoryRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{m.From: "Science Fiction"}, rules.Mappings)
	assert.True(t, rules.IsIgnored("Audiobooks"))

	require.NoError(t, svc.UnmapTag(ctx, m.From))
	require.NoError(t, svc.UnignoreTag(ctx, "Audiobooks"))

	rules, err = svc.CategoryRules(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules.Mappings)
	assert.Empty(t, rules.Ignored)
}

func TestSettingsService_RejectsBadTags(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(settings.NewMemory(), nil)

	_, err := svc.MapTag(ctx, "Fantasy", "fantasy")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = svc.MapTag(ctx, "", "Fantasy")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	assert.True(t, domainerrors.Is(svc.IgnoreTag(ctx, " -- "), domainerrors.ErrValidation))
	assert.True(t, domainerrors.Is(svc.UnmapTag(ctx, ""), domainerrors.ErrValidation))
}

func TestSettingsService_RejectsReverseMapping(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(settings.NewMemory(), nil)

	_, err := svc.MapTag(ctx, "Sci-Fi", "Science Fiction")
	require.NoError(t, err)

	_, err = svc.MapTag(ctx, "science fiction", "sci-fi")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	// Redirecting the existing edge is still allowed.
	_, err = svc.MapTag(ctx, "Sci-Fi", "Speculative Fiction")
	require.NoError(t, err)

	rules, err := svc.CategoryRules(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Sci-Fi": "Speculative Fiction"}, rules.Mappings)
}
