package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookpage/internal/categories"
	"github.com/listenupapp/bookpage/internal/config"
	"github.com/listenupapp/bookpage/internal/logger"
	"github.com/listenupapp/bookpage/internal/ratelimit"
	"github.com/listenupapp/bookpage/internal/service"
)

// ProvideNormalizer provides the category normalizer.
func ProvideNormalizer(i do.Injector) (*categories.Normalizer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return categories.New(cfg.Review.SimilarityThreshold), nil
}

// ProvideReviewService provides the review session service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*SettingsStoreHandle](i)
	normalizer := do.MustInvoke[*categories.Normalizer](i)

	return service.NewReviewService(storeHandle.Repository, normalizer, cfg.Review.SessionTTL, log.Logger), nil
}

// ProvideSettingsService provides the settings service.
func ProvideSettingsService(i do.Injector) (*service.SettingsService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*SettingsStoreHandle](i)

	return service.NewSettingsService(storeHandle.Repository, log.Logger), nil
}

// RateLimiterHandle wraps the API rate limiter with shutdown capability.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.KeyedRateLimiter != nil {
		h.Stop()
	}
	return nil
}

// ProvideRateLimiter provides the per-client API rate limiter.
// A zero rate leaves the handle empty.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if cfg.Server.RequestsPerSecond == 0 {
		return &RateLimiterHandle{}, nil
	}
	return &RateLimiterHandle{
		KeyedRateLimiter: ratelimit.New(cfg.Server.RequestsPerSecond, cfg.Server.Burst),
	}, nil
}
