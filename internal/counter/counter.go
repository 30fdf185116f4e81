// Package counter keeps a displayed signup count in sync with the backend.
// The count is polled on an interval and display updates are animated so the
// number rolls up instead of jumping.
package counter

import (
	"context"
	"math"
	"sync"
	"time"
)

// Defaults for polling and animation.
const (
	DefaultPollInterval      = 30 * time.Second
	DefaultAnimationDuration = 1000 * time.Millisecond

	frameInterval = 16 * time.Millisecond
)

// CountSource supplies the authoritative signup count.
type CountSource interface {
	SubmissionCount(ctx context.Context) (int64, error)
}

// State is a snapshot of the synchronizer.
type State struct {
	Count        int64     // last value fetched from the source
	DisplayCount int64     // value currently shown, mid-animation
	IsLoading    bool      // a fetch is in flight
	LastError    error     // most recent fetch failure, nil after a success
	LastUpdate   time.Time // when Count last changed hands
}

// Synchronizer polls a CountSource and animates the displayed value toward
// each new count. A fetch failure keeps the previous display; the counter
// degrades silently rather than showing an error.
type Synchronizer struct {
	source       CountSource
	pollInterval time.Duration
	animDuration time.Duration

	mu          sync.Mutex
	state       State
	inFlight    bool
	stopped     bool
	cancelAnim  chan struct{}
	subscribers []func(State)

	done chan struct{}
	wg   sync.WaitGroup
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithPollInterval overrides the poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Synchronizer) { s.pollInterval = d }
}

// WithAnimationDuration overrides how long a display animation runs.
func WithAnimationDuration(d time.Duration) Option {
	return func(s *Synchronizer) { s.animDuration = d }
}

// New creates a synchronizer reading from source.
func New(source CountSource, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		source:       source,
		pollInterval: DefaultPollInterval,
		animDuration: DefaultAnimationDuration,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the synchronizer.
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with a snapshot after every display
// update. Callbacks run on the synchronizer's goroutines and must be quick.
func (s *Synchronizer) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Refresh fetches the count once and animates the display toward it. If a
// fetch is already in flight the call is a no-op, so overlapping polls and
// manual refreshes never stack requests.
func (s *Synchronizer) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.inFlight || s.stopped {
		s.mu.Unlock()
		return
	}
	s.inFlight = true
	s.state.IsLoading = true
	s.mu.Unlock()

	count, err := s.source.SubmissionCount(ctx)

	s.mu.Lock()
	s.inFlight = false
	s.state.IsLoading = false
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if err != nil {
		// Keep showing the last known value.
		s.state.LastError = err
		s.mu.Unlock()
		s.notify()
		return
	}
	s.state.LastError = nil
	s.state.Count = count
	s.state.LastUpdate = time.Now()
	start := s.state.DisplayCount
	s.mu.Unlock()

	if start == count {
		s.notify()
		return
	}
	s.animate(start, count)
}

// Start polls the source until ctx is cancelled or Stop is called. The
// first fetch happens immediately.
func (s *Synchronizer) Start(ctx context.Context) {
	s.Refresh(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Refresh(ctx)
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
		}
	}()
}

// Stop halts any running animation and marks the synchronizer finished.
// No state changes happen after Stop returns.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.wg.Wait()
		return
	}
	s.stopped = true
	close(s.done)
	if s.cancelAnim != nil {
		close(s.cancelAnim)
		s.cancelAnim = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// animate rolls DisplayCount from start to target over animDuration,
// cancelling any animation already running.
func (s *Synchronizer) animate(start, target int64) {
	cancel := make(chan struct{})

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if s.cancelAnim != nil {
		close(s.cancelAnim)
	}
	s.cancelAnim = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		began := time.Now()
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				elapsed := time.Since(began)
				value := displayValue(start, target, elapsed, s.animDuration)
				s.setDisplay(cancel, value)
				if value == target {
					return
				}
			case <-cancel:
				return
			}
		}
	}()
}

// setDisplay updates DisplayCount if this animation is still the current
// one, then notifies subscribers.
func (s *Synchronizer) setDisplay(cancel chan struct{}, value int64) {
	s.mu.Lock()
	if s.stopped || s.cancelAnim != cancel {
		s.mu.Unlock()
		return
	}
	s.state.DisplayCount = value
	if value == s.state.Count {
		s.cancelAnim = nil
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Synchronizer) notify() {
	s.mu.Lock()
	subs := append(([]func(State))(nil), s.subscribers...)
	snapshot := s.state
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

// displayValue computes the animated value elapsed into a roll from start to
// target. Progress is eased with easeOutQuart and intermediate values are
// floored, so the value moves monotonically and lands exactly on target when
// the animation completes.
func displayValue(start, target int64, elapsed, duration time.Duration) int64 {
	if duration <= 0 || elapsed >= duration {
		return target
	}
	p := float64(elapsed) / float64(duration)
	eased := 1 - math.Pow(1-p, 4)
	return start + int64(math.Floor(eased*float64(target-start)))
}
