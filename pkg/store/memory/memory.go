// Package memory provides an in-process record sink, suitable for tests and
// short-lived sessions.
package memory

import (
	"context"
	"sync"

	"github.com/goliatone/go-cardform/pkg/record"
)

// Store keeps records in a mutex guarded slice.
type Store struct {
	mu      sync.RWMutex
	records []record.Record
}

var (
	_ record.Sink    = (*Store)(nil)
	_ record.Counter = (*Store)(nil)
)

// New returns an empty store, optionally seeded with records.
func New(seed ...record.Record) *Store {
	return &Store{records: append([]record.Record(nil), seed...)}
}

// Append adds rec to the end of the sequence.
func (s *Store) Append(ctx context.Context, rec record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// ReadAll returns a copy of the stored records.
func (s *Store) ReadAll(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]record.Record(nil), s.records...), nil
}

// Count reports the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
