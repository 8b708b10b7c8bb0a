// Package di provides dependency injection configuration for the BookPage server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookpage/internal/categories"
	"github.com/listenupapp/bookpage/internal/config"
	"github.com/listenupapp/bookpage/internal/di/providers"
	"github.com/listenupapp/bookpage/internal/logger"
	"github.com/listenupapp/bookpage/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideSettingsStore)

	// Business services
	do.Provide(injector, providers.ProvideNormalizer)
	do.Provide(injector, providers.ProvideReviewService)
	do.Provide(injector, providers.ProvideSettingsService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*providers.SettingsStoreHandle](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*categories.Normalizer](injector)
	_ = do.MustInvoke[*service.ReviewService](injector)
	_ = do.MustInvoke[*service.SettingsService](injector)

	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
