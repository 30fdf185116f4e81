package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/courselaunch/waitlist-server/internal/analytics"
	"github.com/courselaunch/waitlist-server/internal/domain"
	"github.com/courselaunch/waitlist-server/internal/errors"
	"github.com/courselaunch/waitlist-server/internal/eventlog"
	"github.com/courselaunch/waitlist-server/internal/validation"
)

// EventService accepts analytics events from clients and hands them to the
// sink. Recording is best-effort: once an event passes validation the
// caller gets an acknowledgement regardless of what happens downstream.
type EventService struct {
	log       *eventlog.Log
	logger    *slog.Logger
	validator *validation.Validator
	sink      analytics.Sink
}

// NewEventService creates a new event service.
func NewEventService(log *eventlog.Log, logger *slog.Logger, sink analytics.Sink) *EventService {
	if sink == nil {
		sink = analytics.NoopSink{}
	}
	return &EventService{
		log:       log,
		logger:    logger,
		validator: validation.New(),
		sink:      sink,
	}
}

// Record validates an incoming event, stamps it, and queues it for the log.
func (s *EventService) Record(evt domain.Event) (*domain.Event, error) {
	if fieldErrors := s.validator.ValidateEvent(evt); len(fieldErrors) > 0 {
		return nil, errors.ValidationWithDetails("validation failed", fieldErrors)
	}

	evt.ID = uuid.NewString()
	evt.Timestamp = time.Now().UTC()

	s.sink.Emit(evt)

	return &evt, nil
}

// Count returns how many events have been recorded.
func (s *EventService) Count() (int64, error) {
	return s.log.Count()
}

// Recent returns the newest events, up to n.
func (s *EventService) Recent(n int) ([]domain.Event, error) {
	return s.log.Recent(n)
}
