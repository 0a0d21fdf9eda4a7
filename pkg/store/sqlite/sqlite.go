// Package sqlite provides a modernc.org/sqlite backed record sink. The schema
// is managed by embedded goose migrations and queries are built with squirrel.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	// Register modernc SQLite driver with database/sql.
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-cardform/pkg/record"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var gooseInitMu sync.Mutex

const (
	tableName     = "card_records"
	busyTimeoutMS = 5000
	// DefaultKey names the sequence used when no key is configured.
	DefaultKey = "cardLoggerDB"
)

// ErrPathRequired is returned when Open receives an empty path.
var ErrPathRequired = errors.New("sqlite: path is required")

// Store appends records to a SQLite table, partitioned by log key.
type Store struct {
	db  *sql.DB
	key string
}

var (
	_ record.Sink    = (*Store)(nil)
	_ record.Counter = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithKey selects the log key rows are written under.
func WithKey(key string) Option {
	return func(s *Store) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			s.key = trimmed
		}
	}
}

// Open opens (or creates) the database at path and applies migrations. Use
// ":memory:" for an ephemeral database.
func Open(ctx context.Context, path string, options ...Option) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrPathRequired
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMS)); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: busy timeout: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, key: DefaultKey}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func applyMigrations(ctx context.Context, db *sql.DB) error {
	gooseInitMu.Lock()
	defer func() {
		goose.SetBaseFS(nil)
		gooseInitMu.Unlock()
	}()
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("sqlite: set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("sqlite: apply migrations: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append inserts rec at the end of the configured log.
func (s *Store) Append(ctx context.Context, rec record.Record) error {
	query, args, err := sq.Insert(tableName).
		Columns("log_key", "record_id", "number", "holder", "expiry", "cvv", "created_at").
		Values(s.key, rec.ID, rec.Number, rec.Holder, rec.Expiry, rec.CVV, rec.Timestamp.UTC().Format(time.RFC3339Nano)).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: insert record: %w", err)
	}
	return nil
}

// ReadAll returns the configured log in insertion order.
func (s *Store) ReadAll(ctx context.Context) ([]record.Record, error) {
	query, args, err := sq.Select("record_id", "number", "holder", "expiry", "cvv", "created_at").
		From(tableName).
		Where(sq.Eq{"log_key": s.key}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build select: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select records: %w", err)
	}
	defer rows.Close()

	records := []record.Record{}
	for rows.Next() {
		var (
			rec     record.Record
			created string
		)
		if err := rows.Scan(&rec.ID, &rec.Number, &rec.Holder, &rec.Expiry, &rec.CVV, &created); err != nil {
			return nil, fmt.Errorf("sqlite: scan record: %w", err)
		}
		rec.Timestamp, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse timestamp for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate records: %w", err)
	}
	return records, nil
}

// Count reports the log length.
func (s *Store) Count(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From(tableName).
		Where(sq.Eq{"log_key": s.key}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("sqlite: build count: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count records: %w", err)
	}
	return n, nil
}
