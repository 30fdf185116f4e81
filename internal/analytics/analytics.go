// Package analytics provides a fire-and-forget event sink for landing page
// instrumentation. Sinks are injected capabilities: code that emits events
// takes a Sink and never checks whether analytics is configured, and a sink
// must never block or surface an error to its caller.
package analytics

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/courselaunch/waitlist-server/internal/domain"
	"github.com/courselaunch/waitlist-server/internal/errors"
	"github.com/courselaunch/waitlist-server/internal/eventlog"
)

// Event names emitted by the waitlist flow.
const (
	EventFormStart         = "form_start"
	EventFormSubmit        = "form_submit"
	EventFormFieldFocus    = "form_field_focus"
	EventFormError         = "form_error"
	EventConversion        = "conversion"
	EventPerformanceMetric = "performance_metric"
	EventErrorOccurred     = "error_occurred"
)

// Event categories.
const (
	CategoryFormInteraction = "form_interaction"
	CategoryEngagement      = "engagement"
	CategoryError           = "error"
	CategoryPerformance     = "performance"
)

// Sink receives analytics events. Implementations must be non-blocking and
// must never panic or return an error to the emitter.
type Sink interface {
	Emit(evt domain.Event)
}

// NewEvent builds an event with a fresh ID and timestamp.
func NewEvent(name, category, label string, value int) domain.Event {
	return domain.Event{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		Label:     label,
		Value:     value,
		Timestamp: time.Now(),
	}
}

// NoopSink discards all events. Used when analytics is disabled.
type NoopSink struct{}

// Emit implements Sink as a no-op.
func (NoopSink) Emit(domain.Event) {}

// StoreSink writes events to the event log on a background goroutine.
// Emit never blocks: when the buffer is full the event is dropped and
// counted, matching the best-effort contract of the sink.
type StoreSink struct {
	log    *eventlog.Log
	logger *slog.Logger

	events chan domain.Event
	done   chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	dropped int64
}

// NewStoreSink creates a sink backed by the given event log and starts its
// writer goroutine.
func NewStoreSink(log *eventlog.Log, logger *slog.Logger) *StoreSink {
	s := &StoreSink{
		log:    log,
		logger: logger,
		events: make(chan domain.Event, 256),
		done:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// Emit queues an event for recording. Never blocks.
func (s *StoreSink) Emit(evt domain.Event) {
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	select {
	case s.events <- evt:
	default:
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
	}
}

// Dropped returns how many events were discarded due to backpressure.
func (s *StoreSink) Dropped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close stops the writer after draining queued events.
func (s *StoreSink) Close() error {
	close(s.done)
	s.wg.Wait()
	return nil
}

func (s *StoreSink) run() {
	defer s.wg.Done()
	for {
		select {
		case evt := <-s.events:
			s.write(evt)
		case <-s.done:
			// Drain whatever is already queued, then stop.
			for {
				select {
				case evt := <-s.events:
					s.write(evt)
				default:
					return
				}
			}
		}
	}
}

func (s *StoreSink) write(evt domain.Event) {
	if err := s.log.Append(evt); err != nil && s.logger != nil {
		s.logger.Warn("Failed to record analytics event", "event", evt.Name, "error", err)
	}
}

// ErrorReporter adapts a Sink to the errors.EventSink interface so the
// classifier can forward every classified failure as an error_occurred event.
type ErrorReporter struct {
	sink Sink
}

// NewErrorReporter wraps sink for error reporting.
func NewErrorReporter(sink Sink) *ErrorReporter {
	if sink == nil {
		sink = NoopSink{}
	}
	return &ErrorReporter{sink: sink}
}

// Error implements errors.EventSink.
func (r *ErrorReporter) Error(appErr *errors.AppError) {
	value := 0
	if appErr.Severity == errors.SeverityCritical {
		value = 1
	}
	r.sink.Emit(NewEvent(EventErrorOccurred, CategoryError, string(appErr.Kind), value))
}
