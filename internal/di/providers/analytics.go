package providers

import (
	"github.com/samber/do/v2"

	"github.com/courselaunch/waitlist-server/internal/analytics"
	"github.com/courselaunch/waitlist-server/internal/config"
	"github.com/courselaunch/waitlist-server/internal/errors"
	"github.com/courselaunch/waitlist-server/internal/logger"
)

// SinkHandle wraps the analytics sink with shutdown capability. When
// analytics is disabled it holds a no-op sink and shutdown does nothing.
type SinkHandle struct {
	analytics.Sink
	store *analytics.StoreSink
}

// Shutdown implements do.Shutdownable.
func (h *SinkHandle) Shutdown() error {
	if h.store != nil {
		return h.store.Close()
	}
	return nil
}

// ProvideSink provides the analytics event sink.
func ProvideSink(i do.Injector) (*SinkHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Analytics.Enabled {
		log.Info("Analytics disabled")
		return &SinkHandle{Sink: analytics.NoopSink{}}, nil
	}

	logHandle := do.MustInvoke[*EventLogHandle](i)
	sink := analytics.NewStoreSink(logHandle.Log, log.Logger)

	return &SinkHandle{Sink: sink, store: sink}, nil
}

// ProvideClassifier provides the error classifier, reporting classified
// failures to the analytics sink.
func ProvideClassifier(i do.Injector) (*errors.Classifier, error) {
	sinkHandle := do.MustInvoke[*SinkHandle](i)
	return errors.NewClassifier(analytics.NewErrorReporter(sinkHandle.Sink)), nil
}
