package providers

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookpage/internal/config"
	"github.com/listenupapp/bookpage/internal/logger"
	"github.com/listenupapp/bookpage/internal/settings"
	"github.com/listenupapp/bookpage/internal/store"
	"github.com/listenupapp/bookpage/internal/store/sqlite"
)

// SettingsStoreHandle wraps the configured settings backend with shutdown capability.
// Shutdown may be called more than once; only the first call closes.
type SettingsStoreHandle struct {
	settings.Repository
	close func() error

	once     sync.Once
	closeErr error
}

// Shutdown implements do.Shutdownable.
func (h *SettingsStoreHandle) Shutdown() error {
	h.once.Do(func() {
		if h.close != nil {
			h.closeErr = h.close()
		}
	})
	return h.closeErr
}

// OpenSettingsStore opens the backend selected by cfg.Store.Backend.
func OpenSettingsStore(cfg *config.Config, log *slog.Logger) (*SettingsStoreHandle, error) {
	if cfg.Store.Backend == config.BackendMemory {
		return &SettingsStoreHandle{Repository: settings.NewMemory()}, nil
	}

	if err := os.MkdirAll(cfg.Data.BasePath, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	switch cfg.Store.Backend {
	case config.BackendBadger:
		db, err := store.New(filepath.Join(cfg.Data.BasePath, "settings"), log)
		if err != nil {
			return nil, err
		}
		return &SettingsStoreHandle{Repository: db, close: db.Close}, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(filepath.Join(cfg.Data.BasePath, "bookpage.db"), log)
		if err != nil {
			return nil, err
		}
		return &SettingsStoreHandle{Repository: db, close: db.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}

// ProvideSettingsStore provides the persisted preference store.
func ProvideSettingsStore(i do.Injector) (*SettingsStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	handle, err := OpenSettingsStore(cfg, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Settings store initialized", "backend", cfg.Store.Backend, "path", cfg.Data.BasePath)
	return handle, nil
}
