package record

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-cardform/internal/logger"
	"github.com/goliatone/go-cardform/pkg/card"
)

// Clock returns the wall-clock time stamped onto records.
type Clock func() time.Time

// CommitterOption configures a Committer.
type CommitterOption func(*Committer)

// WithIDGenerator overrides the default "User-<n>" ids.
func WithIDGenerator(gen IDGenerator) CommitterOption {
	return func(c *Committer) {
		if gen != nil {
			c.ids = gen
		}
	}
}

// WithClock overrides time.Now.
func WithClock(clock Clock) CommitterOption {
	return func(c *Committer) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l logger.Logger) CommitterOption {
	return func(c *Committer) {
		if l != nil {
			c.log = l
		}
	}
}

// Committer appends a record to the sink when, and only when, the values
// pass the completeness gate. Commits are serialized so the length-derived
// id and the append happen as one step.
type Committer struct {
	mu    sync.Mutex
	sink  Sink
	ids   IDGenerator
	clock Clock
	log   logger.Logger
}

// NewCommitter constructs a Committer writing to sink.
func NewCommitter(sink Sink, options ...CommitterOption) *Committer {
	c := &Committer{
		sink:  sink,
		ids:   SequenceIDs(""),
		clock: time.Now,
		log:   logger.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Sink exposes the underlying sink.
func (c *Committer) Sink() Sink {
	if c == nil {
		return nil
	}
	return c.sink
}

// Commit re-checks the gate against values and appends a new record. An
// incomplete form is inert: it returns ok=false and a nil error without
// touching the sink. Storage failures wrap ErrSinkUnavailable.
func (c *Committer) Commit(ctx context.Context, values card.Values) (rec Record, ok bool, err error) {
	if c == nil || c.sink == nil {
		return Record{}, false, ErrNilSink
	}
	if err := ctx.Err(); err != nil {
		return Record{}, false, err
	}
	if !card.Complete(values) {
		c.log.Debug("commit ignored, form incomplete")
		return Record{}, false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	count, err := Count(ctx, c.sink)
	if err != nil {
		c.log.Warn("commit failed reading sink length", "error", err)
		return Record{}, false, fmt.Errorf("%w: count: %w", ErrSinkUnavailable, err)
	}

	rec = New(c.ids(count), values, c.clock())
	if err := c.sink.Append(ctx, rec); err != nil {
		c.log.Warn("commit failed appending record", "id", rec.ID, "error", err)
		return Record{}, false, fmt.Errorf("%w: append: %w", ErrSinkUnavailable, err)
	}

	c.log.Info("record committed",
		"id", rec.ID,
		"network", rec.Network(),
		"digits", len(card.NumberDigits(rec.Number)),
	)
	return rec, true, nil
}

// List returns every stored record in insertion order.
func (c *Committer) List(ctx context.Context) ([]Record, error) {
	if c == nil || c.sink == nil {
		return nil, ErrNilSink
	}
	records, err := c.sink.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrSinkUnavailable, err)
	}
	return records, nil
}
