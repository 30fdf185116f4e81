// Package formcache keeps in-progress form data so a failed or abandoned
// submission can be recovered. Entries expire after a fixed TTL and are
// invalidated lazily on read; nothing sweeps the cache in the background.
package formcache

import (
	"sync"
	"time"
)

const (
	// DefaultTTL is how long saved form data stays recoverable.
	DefaultTTL = 30 * time.Minute

	// AutoSaveInterval is how often AutoSave snapshots the form.
	AutoSaveInterval = 30 * time.Second
)

type entry[T any] struct {
	data    T
	savedAt time.Time
}

// Cache stores form snapshots keyed by form ID.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	ttl     time.Duration
	isEmpty func(T) bool
	now     func() time.Time
}

// New creates a cache with DefaultTTL. isEmpty reports whether a snapshot
// carries no user input; empty snapshots are skipped by AutoSave. A nil
// isEmpty treats every snapshot as worth saving.
func New[T any](isEmpty func(T) bool) *Cache[T] {
	if isEmpty == nil {
		isEmpty = func(T) bool { return false }
	}
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		ttl:     DefaultTTL,
		isEmpty: isEmpty,
		now:     time.Now,
	}
}

// Put saves a snapshot for formID, overwriting any previous one and
// restarting its TTL.
func (c *Cache[T]) Put(formID string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[formID] = entry[T]{data: data, savedAt: c.now()}
}

// Recover returns the saved snapshot for formID if one exists and has not
// expired. Expired entries are removed on the way out.
func (c *Cache[T]) Recover(formID string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.entries[formID]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.savedAt) > c.ttl {
		delete(c.entries, formID)
		return zero, false
	}
	return e.data, true
}

// Clear drops the snapshot for formID.
func (c *Cache[T]) Clear(formID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, formID)
}

// Len reports how many snapshots are currently held, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// AutoSave snapshots getData into the cache every AutoSaveInterval until the
// returned stop function is called. Stop takes one final snapshot so edits
// made between ticks are not lost. Empty snapshots are skipped.
func (c *Cache[T]) AutoSave(formID string, getData func() T) (stop func()) {
	done := make(chan struct{})
	var once sync.Once

	save := func() {
		data := getData()
		if c.isEmpty(data) {
			return
		}
		c.Put(formID, data)
	}

	go func() {
		ticker := time.NewTicker(AutoSaveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				save()
			case <-done:
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(done)
			save()
		})
	}
}
