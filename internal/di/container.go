// Package di provides dependency injection configuration for the waitlist server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/courselaunch/waitlist-server/internal/config"
	"github.com/courselaunch/waitlist-server/internal/di/providers"
	"github.com/courselaunch/waitlist-server/internal/errors"
	"github.com/courselaunch/waitlist-server/internal/logger"
	"github.com/courselaunch/waitlist-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Persistence
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideEventLog)

	// Analytics
	do.Provide(injector, providers.ProvideSink)
	do.Provide(injector, providers.ProvideClassifier)

	// Business services
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideWaitlistService)
	do.Provide(injector, providers.ProvideEventService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.EventLogHandle](injector)
	_ = do.MustInvoke[*providers.SinkHandle](injector)
	_ = do.MustInvoke[*errors.Classifier](injector)
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*service.WaitlistService](injector)
	_ = do.MustInvoke[*service.EventService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
