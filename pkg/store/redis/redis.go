// Package redis stores records in a Redis list, one JSON document per entry.
// RPUSH keeps insertion order and LLEN answers the length without reading
// the list.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/goliatone/go-cardform/pkg/record"
)

// DefaultKey names the list used when no key is configured.
const DefaultKey = "cardLoggerDB"

// ErrClientRequired is returned when New receives a nil client.
var ErrClientRequired = errors.New("redis: client is required")

// Store appends records to a Redis list.
type Store struct {
	client goredis.UniversalClient
	key    string
}

var (
	_ record.Sink    = (*Store)(nil)
	_ record.Counter = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithKey selects the list key.
func WithKey(key string) Option {
	return func(s *Store) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			s.key = trimmed
		}
	}
}

// New wraps an existing client.
func New(client goredis.UniversalClient, options ...Option) (*Store, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	s := &Store{client: client, key: DefaultKey}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr string, options ...Option) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return New(client, options...)
}

// Close closes the underlying client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Append pushes rec onto the tail of the list.
func (s *Store) Append(ctx context.Context, rec record.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis: encode record: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, payload).Err(); err != nil {
		return fmt.Errorf("redis: rpush: %w", err)
	}
	return nil
}

// ReadAll returns every list entry in insertion order.
func (s *Store) ReadAll(ctx context.Context) ([]record.Record, error) {
	entries, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: lrange: %w", err)
	}
	records := make([]record.Record, 0, len(entries))
	for i, entry := range entries {
		var rec record.Record
		if err := json.Unmarshal([]byte(entry), &rec); err != nil {
			return nil, fmt.Errorf("redis: decode entry %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Count reports the list length.
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.client.LLen(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: llen: %w", err)
	}
	return int(n), nil
}
