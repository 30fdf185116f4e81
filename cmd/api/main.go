// Package main provides the entry point for the waitlist server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/courselaunch/waitlist-server/internal/di"
	"github.com/courselaunch/waitlist-server/internal/di/providers"
	"github.com/courselaunch/waitlist-server/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The sink drains queued events before the log closes, and the stores
	// use wrapper types, so close them explicitly last.
	if sinkHandle, err := do.Invoke[*providers.SinkHandle](injector); err == nil {
		if err := sinkHandle.Shutdown(); err != nil {
			log.Error("Failed to close analytics sink", "error", err)
		}
	}

	if logHandle, err := do.Invoke[*providers.EventLogHandle](injector); err == nil {
		log.Info("Closing event log...")
		if err := logHandle.Shutdown(); err != nil {
			log.Error("Failed to close event log", "error", err)
		}
	}

	if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		log.Info("Closing database...")
		if err := storeHandle.Shutdown(); err != nil {
			log.Error("Failed to close database", "error", err)
		} else {
			log.Info("Database closed successfully")
		}
	}

	log.Info("Goodbye")
}
