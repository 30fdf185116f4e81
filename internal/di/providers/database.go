package providers

import (
	"github.com/samber/do/v2"

	"github.com/courselaunch/waitlist-server/internal/config"
	"github.com/courselaunch/waitlist-server/internal/eventlog"
	"github.com/courselaunch/waitlist-server/internal/logger"
	"github.com/courselaunch/waitlist-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the submissions database.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := cfg.SubmissionsPath()
	db, err := store.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// EventLogHandle wraps the analytics event log with shutdown capability.
type EventLogHandle struct {
	*eventlog.Log
}

// Shutdown implements do.Shutdownable.
func (h *EventLogHandle) Shutdown() error {
	return h.Close()
}

// ProvideEventLog provides the analytics event log.
func ProvideEventLog(i do.Injector) (*EventLogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	eventLog, err := eventlog.Open(cfg.EventLogPath(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Event log initialized", "path", cfg.EventLogPath())

	return &EventLogHandle{Log: eventLog}, nil
}
