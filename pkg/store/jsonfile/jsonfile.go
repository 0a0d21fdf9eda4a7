// Package jsonfile persists records as a JSON document on disk. The document
// is an object of named sequences, so several logs can share one file the way
// keys share a browser key-value store. Goroutines sharing a Store are
// serialized by a mutex; processes sharing a file coordinate through an
// advisory file lock taken per operation.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/goliatone/go-cardform/pkg/record"
)

// DefaultKey names the sequence used when no key is configured.
const DefaultKey = "cardLoggerDB"

const lockRetryDelay = 10 * time.Millisecond

// ErrPathRequired is returned when the store is built without a file path.
var ErrPathRequired = errors.New("jsonfile: path is required")

// Store appends records to a named sequence inside a JSON file.
type Store struct {
	mu       sync.RWMutex
	path     string
	key      string
	lockPath string
}

var (
	_ record.Sink    = (*Store)(nil)
	_ record.Counter = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithKey selects the sequence name inside the document.
func WithKey(key string) Option {
	return func(s *Store) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			s.key = trimmed
		}
	}
}

// New returns a store backed by path. The file is created on first append.
func New(path string, options ...Option) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrPathRequired
	}
	s := &Store{
		path:     path,
		key:      DefaultKey,
		lockPath: path + ".lock",
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Path reports the backing file.
func (s *Store) Path() string { return s.path }

// Append adds rec to the end of the configured sequence.
func (s *Store) Append(ctx context.Context, rec record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, err := s.acquire(ctx, false)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}

	var records []record.Record
	if raw, ok := doc[s.key]; ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &records); err != nil {
			return fmt.Errorf("jsonfile: decode %q: %w", s.key, err)
		}
	}
	records = append(records, rec)

	encoded, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("jsonfile: encode %q: %w", s.key, err)
	}
	doc[s.key] = encoded
	return s.writeDocument(doc)
}

// ReadAll returns the configured sequence in insertion order.
func (s *Store) ReadAll(ctx context.Context) ([]record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lock, err := s.acquire(ctx, true)
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}
	raw, ok := doc[s.key]
	if !ok || len(raw) == 0 {
		return []record.Record{}, nil
	}
	var records []record.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("jsonfile: decode %q: %w", s.key, err)
	}
	if records == nil {
		records = []record.Record{}
	}
	return records, nil
}

// Count reports the sequence length.
func (s *Store) Count(ctx context.Context) (int, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// acquire takes the file lock on a fresh handle. A flock handle reports an
// already held lock as acquired, so handles are never shared between calls.
func (s *Store) acquire(ctx context.Context, shared bool) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create dir: %w", err)
	}
	lock := flock.New(s.lockPath)
	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = lock.TryRLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = lock.TryLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		lock.Close()
		return nil, fmt.Errorf("jsonfile: lock: %w", err)
	}
	if !locked {
		lock.Close()
		return nil, fmt.Errorf("jsonfile: lock %s not acquired", lock.Path())
	}
	return lock, nil
}

func (s *Store) readDocument() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jsonfile: decode document: %w", err)
	}
	return doc, nil
}

func (s *Store) writeDocument(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode document: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: replace: %w", err)
	}
	return nil
}
