package counter

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	count   int64
	err     error
	calls   int
	release chan struct{}
}

func (f *fakeSource) SubmissionCount(context.Context) (int64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count, f.err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestDisplayValueEndpoints(t *testing.T) {
	assert.Equal(t, int64(0), displayValue(0, 100, 0, time.Second))
	assert.Equal(t, int64(100), displayValue(0, 100, time.Second, time.Second))
	assert.Equal(t, int64(100), displayValue(0, 100, 2*time.Second, time.Second))
}

func TestDisplayValueEaseOutQuart(t *testing.T) {
	// At half the duration easeOutQuart has covered 1-(1-0.5)^4 = 93.75%.
	got := displayValue(0, 1000, 500*time.Millisecond, time.Second)
	assert.Equal(t, int64(937), got)

	// From a non-zero start.
	got = displayValue(100, 200, 500*time.Millisecond, time.Second)
	assert.Equal(t, int64(193), got)
}

func TestDisplayValueMonotonic(t *testing.T) {
	duration := time.Second
	prev := int64(0)
	for elapsed := time.Duration(0); elapsed <= duration; elapsed += 16 * time.Millisecond {
		v := displayValue(0, 1234, elapsed, duration)
		require.GreaterOrEqual(t, v, prev, "display value went backwards at %v", elapsed)
		prev = v
	}
	assert.Equal(t, int64(1234), displayValue(0, 1234, duration, duration))
}

func TestDisplayValueDecreasing(t *testing.T) {
	duration := time.Second
	prev := int64(500)
	for elapsed := time.Duration(0); elapsed <= duration; elapsed += 16 * time.Millisecond {
		v := displayValue(500, 100, elapsed, duration)
		require.LessOrEqual(t, v, prev)
		prev = v
	}
	assert.Equal(t, int64(100), prev)
}

func TestRefreshAnimatesToTarget(t *testing.T) {
	source := &fakeSource{count: 42}
	s := New(source, WithAnimationDuration(50*time.Millisecond))
	defer s.Stop()

	s.Refresh(context.Background())

	require.Eventually(t, func() bool {
		return s.State().DisplayCount == 42
	}, time.Second, 5*time.Millisecond)

	state := s.State()
	assert.Equal(t, int64(42), state.Count)
	assert.NoError(t, state.LastError)
	assert.False(t, state.LastUpdate.IsZero())
}

func TestRefreshInFlightGuard(t *testing.T) {
	source := &fakeSource{count: 10, release: make(chan struct{})}
	s := New(source)
	defer s.Stop()

	go s.Refresh(context.Background())
	require.Eventually(t, func() bool { return source.callCount() == 1 }, time.Second, time.Millisecond)

	// Overlapping refreshes are dropped while the first is in flight.
	s.Refresh(context.Background())
	s.Refresh(context.Background())
	assert.Equal(t, 1, source.callCount())

	close(source.release)
	require.Eventually(t, func() bool { return s.State().Count == 10 }, time.Second, time.Millisecond)
}

func TestRefreshErrorKeepsDisplay(t *testing.T) {
	source := &fakeSource{count: 42}
	s := New(source, WithAnimationDuration(10*time.Millisecond))
	defer s.Stop()

	s.Refresh(context.Background())
	require.Eventually(t, func() bool {
		return s.State().DisplayCount == 42
	}, time.Second, time.Millisecond)

	source.mu.Lock()
	source.err = fmt.Errorf("connection refused")
	source.mu.Unlock()

	s.Refresh(context.Background())

	state := s.State()
	assert.Equal(t, int64(42), state.DisplayCount, "a failed poll keeps the last value")
	assert.Error(t, state.LastError)
	assert.False(t, state.IsLoading)
}

func TestSubscribe(t *testing.T) {
	source := &fakeSource{count: 5}
	s := New(source, WithAnimationDuration(10*time.Millisecond))
	defer s.Stop()

	var mu sync.Mutex
	var last State
	s.Subscribe(func(st State) {
		mu.Lock()
		last = st
		mu.Unlock()
	})

	s.Refresh(context.Background())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return last.DisplayCount == 5
	}, time.Second, time.Millisecond)
}

func TestStartPolls(t *testing.T) {
	source := &fakeSource{count: 1}
	s := New(source, WithPollInterval(10*time.Millisecond), WithAnimationDuration(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	require.Eventually(t, func() bool { return source.callCount() >= 3 }, time.Second, time.Millisecond)

	cancel()
	s.Stop()
}

func TestStopFreezesState(t *testing.T) {
	source := &fakeSource{count: 1000}
	s := New(source, WithAnimationDuration(500*time.Millisecond))

	s.Refresh(context.Background())
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	frozen := s.State()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, frozen.DisplayCount, s.State().DisplayCount)

	// Refresh after Stop is ignored.
	s.Refresh(context.Background())
	assert.Equal(t, frozen.Count, s.State().Count)
}
