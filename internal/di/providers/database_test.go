package providers

import (
	"context"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookpage/internal/config"
	"github.com/listenupapp/bookpage/internal/domain"
	"github.com/listenupapp/bookpage/internal/logger"
	"github.com/listenupapp/bookpage/internal/service"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	return &config.Config{
		App:    config.AppConfig{Environment: "development"},
		Logger: config.LoggerConfig{Level: "error"},
		Data:   config.DataConfig{BasePath: t.TempDir()},
		Store:  config.StoreConfig{Backend: backend},
		Review: config.ReviewConfig{SessionTTL: time.Minute, SimilarityThreshold: 0.8},
	}
}

func TestOpenSettingsStore_Backends(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendSQLite, config.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			handle, err := OpenSettingsStore(testConfig(t, backend), nil)
			require.NoError(t, err)

			require.NoError(t, handle.SetFieldDefault(ctx, domain.FieldPublisher, domain.Edition(1)))
			got, ok, err := handle.GetFieldDefault(ctx, domain.FieldPublisher)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, domain.Edition(1), got)

			assert.NoError(t, handle.Shutdown())
			assert.NoError(t, handle.Shutdown(), "second shutdown is a no-op")
		})
	}
}

func TestOpenSettingsStore_UnknownBackend(t *testing.T) {
	_, err := OpenSettingsStore(testConfig(t, "postgres"), nil)
	assert.ErrorContains(t, err, "unsupported store backend")
}

func TestProviders_ResolveServices(t *testing.T) {
	injector := do.New()
	do.ProvideValue(injector, testConfig(t, config.BackendMemory))
	do.ProvideValue(injector, logger.Discard())
	do.Provide(injector, ProvideSettingsStore)
	do.Provide(injector, ProvideNormalizer)
	do.Provide(injector, ProvideReviewService)
	do.Provide(injector, ProvideSettingsService)
	do.Provide(injector, ProvideRateLimiter)

	reviews := do.MustInvoke[*service.ReviewService](injector)
	settingsService := do.MustInvoke[*service.SettingsService](injector)

	ctx := context.Background()
	view, err := reviews.Create(ctx, service.ReviewRecords{Primary: domain.BookRecord{Title: "Emma"}})
	require.NoError(t, err)
	_, err = reviews.SelectSource(ctx, view.ID, domain.FieldTitle, domain.Original)
	require.NoError(t, err)

	defaults, err := settingsService.ListFieldDefaults(ctx)
	require.NoError(t, err)
	assert.Len(t, defaults, 1, "services share one store")

	limiter := do.MustInvoke[*RateLimiterHandle](injector)
	assert.Nil(t, limiter.KeyedRateLimiter, "zero rate disables limiting")

	_ = injector.Shutdown()
}
