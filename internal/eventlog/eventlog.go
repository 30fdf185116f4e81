// Package eventlog provides an append-only Badger-backed log of analytics
// events. Events are best-effort operational data, so the log trades
// durability for write throughput (no synchronous disk syncs).
package eventlog

import (
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"github.com/courselaunch/waitlist-server/internal/domain"
)

// eventPrefix namespaces event keys. Keys are prefix + zero-padded unix
// nanos + ":" + event ID, so iteration order is insertion order.
const eventPrefix = "event:"

// Log wraps a Badger database holding analytics events.
type Log struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens (or creates) the event log at the given directory.
func Open(path string, logger *slog.Logger) (*Log, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil       // Disable Badger's internal logging
	opts.SyncWrites = false // Events are best effort; batched syncs are enough

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Event log opened", "path", path)
	}

	return &Log{db: db, logger: logger}, nil
}

// Close gracefully closes the database.
func (l *Log) Close() error {
	if l.logger != nil {
		l.logger.Info("Closing event log")
	}
	return l.db.Close()
}

// Append writes one event to the log.
func (l *Log) Append(evt domain.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	key := eventKey(evt)
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// Count returns the number of events in the log.
func (l *Log) Count() (int64, error) {
	var count int64
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // keys only
		opts.Prefix = []byte(eventPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Recent returns up to n events, newest first.
func (l *Log) Recent(n int) ([]domain.Event, error) {
	if n <= 0 {
		n = 50
	}

	var events []domain.Event
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(eventPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts from the key just past the prefix range.
		seek := append([]byte(eventPrefix), 0xff)
		for it.Seek(seek); it.Valid() && len(events) < n; it.Next() {
			var evt domain.Event
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &evt)
			})
			if err != nil {
				return err
			}
			events = append(events, evt)
		}
		return nil
	})
	return events, err
}

func eventKey(evt domain.Event) []byte {
	ts := strconv.FormatInt(evt.Timestamp.UnixNano(), 10)
	// Zero-pad so lexicographic order matches chronological order.
	for len(ts) < 20 {
		ts = "0" + ts
	}
	return []byte(eventPrefix + ts + ":" + evt.ID)
}
