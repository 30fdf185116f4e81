package formcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courselaunch/waitlist-server/internal/domain"
)

func newTestCache() *Cache[domain.Submission] {
	return New(domain.Submission.IsEmpty)
}

func TestPutRecover(t *testing.T) {
	cache := newTestCache()

	cache.Put("interest-form", domain.Submission{Name: "Jane Doe", Email: "jane@example.com"})

	got, ok := cache.Recover("interest-form")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestRecoverMissing(t *testing.T) {
	cache := newTestCache()

	_, ok := cache.Recover("interest-form")
	assert.False(t, ok)
}

func TestRecoverExpired(t *testing.T) {
	cache := newTestCache()
	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Put("interest-form", domain.Submission{Name: "Jane Doe"})

	// Just inside the TTL the entry is still recoverable.
	current = current.Add(DefaultTTL)
	_, ok := cache.Recover("interest-form")
	assert.True(t, ok)

	// Past the TTL it is gone and stays gone.
	current = current.Add(time.Second)
	_, ok = cache.Recover("interest-form")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}

func TestPutRestartsTTL(t *testing.T) {
	cache := newTestCache()
	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Put("interest-form", domain.Submission{Name: "Jane"})
	current = current.Add(20 * time.Minute)
	cache.Put("interest-form", domain.Submission{Name: "Jane Doe"})

	current = current.Add(20 * time.Minute)
	got, ok := cache.Recover("interest-form")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", got.Name)
}

func TestClear(t *testing.T) {
	cache := newTestCache()

	cache.Put("interest-form", domain.Submission{Name: "Jane Doe"})
	cache.Clear("interest-form")

	_, ok := cache.Recover("interest-form")
	assert.False(t, ok)
}

func TestAutoSaveFinalSnapshot(t *testing.T) {
	cache := newTestCache()

	data := domain.Submission{Name: "Jane Doe", Email: "jane@example.com"}
	stop := cache.AutoSave("interest-form", func() domain.Submission { return data })
	stop()

	got, ok := cache.Recover("interest-form")
	require.True(t, ok)
	assert.Equal(t, data, got)
}

func TestAutoSaveSkipsEmpty(t *testing.T) {
	cache := newTestCache()

	stop := cache.AutoSave("interest-form", func() domain.Submission { return domain.Submission{} })
	stop()

	_, ok := cache.Recover("interest-form")
	assert.False(t, ok)
}

func TestAutoSaveStopIdempotent(t *testing.T) {
	cache := newTestCache()

	stop := cache.AutoSave("interest-form", func() domain.Submission {
		return domain.Submission{Name: "Jane"}
	})
	stop()
	stop()
}
