// Package main provides the entry point for the BookPage review server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookpage/internal/di"
	"github.com/listenupapp/bookpage/internal/di/providers"
	"github.com/listenupapp/bookpage/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Handles implementing do.Shutdownable are stopped in reverse order.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The settings store is a wrapper type and is closed explicitly.
	if storeHandle, err := do.Invoke[*providers.SettingsStoreHandle](injector); err == nil {
		log.Info("Closing settings store...")
		if err := storeHandle.Shutdown(); err != nil {
			log.Error("Failed to close settings store", "error", err)
		} else {
			log.Info("Settings store closed")
		}
	}

	log.Info("Server stopped")
}
