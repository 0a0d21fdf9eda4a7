package record

import (
	"context"
	"errors"
)

var (
	// ErrNilSink is returned when a Committer has no sink configured.
	ErrNilSink = errors.New("record: sink is nil")
	// ErrSinkUnavailable wraps storage failures surfaced during a commit. The
	// form state is left untouched so the commit can be retried.
	ErrSinkUnavailable = errors.New("record: sink unavailable")
)

// Sink is an ordered, append-only sequence of records keyed only by insertion
// order.
type Sink interface {
	Append(ctx context.Context, rec Record) error
	ReadAll(ctx context.Context) ([]Record, error)
}

// Counter is implemented by sinks that can report their length without
// reading every record.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Count returns the number of records held by sink, preferring Counter when
// the sink implements it.
func Count(ctx context.Context, sink Sink) (int, error) {
	if sink == nil {
		return 0, ErrNilSink
	}
	if counter, ok := sink.(Counter); ok {
		return counter.Count(ctx)
	}
	records, err := sink.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
