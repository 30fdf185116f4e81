package providers

import (
	"github.com/samber/do/v2"

	"github.com/courselaunch/waitlist-server/internal/config"
	"github.com/courselaunch/waitlist-server/internal/logger"
	"github.com/courselaunch/waitlist-server/internal/ratelimit"
	"github.com/courselaunch/waitlist-server/internal/service"
)

// RateLimiterHandle wraps the submit rate limiter with shutdown capability.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRateLimiter provides the per-IP submission rate limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	limiter := ratelimit.New(cfg.RateLimit.SubmitRPS, cfg.RateLimit.SubmitBurst)
	return &RateLimiterHandle{KeyedRateLimiter: limiter}, nil
}

// ProvideWaitlistService provides the waitlist service.
func ProvideWaitlistService(i do.Injector) (*service.WaitlistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	sinkHandle := do.MustInvoke[*SinkHandle](i)

	return service.NewWaitlistService(storeHandle.Store, log.Logger, sinkHandle.Sink), nil
}

// ProvideEventService provides the analytics event service.
func ProvideEventService(i do.Injector) (*service.EventService, error) {
	logHandle := do.MustInvoke[*EventLogHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	sinkHandle := do.MustInvoke[*SinkHandle](i)

	return service.NewEventService(logHandle.Log, log.Logger, sinkHandle.Sink), nil
}
