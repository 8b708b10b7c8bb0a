package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookpage/internal/api"
	"github.com/listenupapp/bookpage/internal/config"
	"github.com/listenupapp/bookpage/internal/logger"
	"github.com/listenupapp/bookpage/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	reviews := do.MustInvoke[*service.ReviewService](i)
	settingsService := do.MustInvoke[*service.SettingsService](i)
	limiter := do.MustInvoke[*RateLimiterHandle](i)

	handler := api.NewServer(reviews, settingsService, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Limiter:        limiter.KeyedRateLimiter,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	srvLog := log.WithField("addr", srv.Addr)
	go func() {
		srvLog.Info("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvLog.WithError(err).Error("HTTP server error")
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
