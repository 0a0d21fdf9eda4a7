package record_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardform/pkg/card"
	"github.com/goliatone/go-cardform/pkg/record"
	"github.com/goliatone/go-cardform/pkg/store/memory"
)

var fixedNow = time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func completeValues() card.Values {
	return card.Values{
		Number: "4111 1111 1111 1111",
		Holder: "JANE DOE",
		Expiry: "12/29",
		CVV:    "123",
	}
}

func TestCommit_IncompleteIsNoop(t *testing.T) {
	ctx := context.Background()
	store := memory.New(record.Record{ID: "User-1"})
	committer := record.NewCommitter(store, record.WithClock(fixedClock))

	rec, ok, err := committer.Commit(ctx, completeValues().With(card.FieldHolder, ""))
	if err != nil {
		t.Fatalf("incomplete commit should not error: %v", err)
	}
	if ok || rec != (record.Record{}) {
		t.Fatalf("expected inert commit, got ok=%v rec=%+v", ok, rec)
	}
	if n, _ := store.Count(ctx); n != 1 {
		t.Fatalf("sink length changed to %d", n)
	}
}

func TestCommit_AppendsOneRecordWithSequenceID(t *testing.T) {
	ctx := context.Background()
	store := memory.New(record.Record{ID: "User-1"}, record.Record{ID: "User-2"})
	committer := record.NewCommitter(store, record.WithClock(fixedClock))

	rec, ok, err := committer.Commit(ctx, completeValues())
	if err != nil || !ok {
		t.Fatalf("commit: ok=%v err=%v", ok, err)
	}

	want := record.Record{
		ID:        "User-3",
		Number:    "4111 1111 1111 1111",
		Holder:    "JANE DOE",
		Expiry:    "12/29",
		CVV:       "123",
		Timestamp: fixedNow,
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	all, _ := store.ReadAll(ctx)
	if len(all) != 3 {
		t.Fatalf("expected exactly one appended record, have %d", len(all))
	}
	if diff := cmp.Diff(want, all[2]); diff != "" {
		t.Fatalf("stored record mismatch (-want +got):\n%s", diff)
	}
}

// Sequence ids are derived from the length, so a sink that lost an entry
// hands out an id that already exists.
func TestCommit_SequenceIDsCollideAfterLoss(t *testing.T) {
	ctx := context.Background()
	store := memory.New(record.Record{ID: "User-2"})
	committer := record.NewCommitter(store)

	rec, ok, err := committer.Commit(ctx, completeValues())
	if err != nil || !ok {
		t.Fatalf("commit: ok=%v err=%v", ok, err)
	}
	if rec.ID != "User-2" {
		t.Fatalf("expected colliding id User-2, got %s", rec.ID)
	}
}

func TestCommit_UUIDStrategyIsUnique(t *testing.T) {
	ctx := context.Background()
	gen, err := record.GeneratorFor(record.IDStrategyUUID, "User")
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	committer := record.NewCommitter(memory.New(), record.WithIDGenerator(gen))

	seen := map[string]struct{}{}
	for i := 0; i < 5; i++ {
		rec, ok, err := committer.Commit(ctx, completeValues())
		if err != nil || !ok {
			t.Fatalf("commit %d: ok=%v err=%v", i, ok, err)
		}
		if !strings.HasPrefix(rec.ID, "User-") {
			t.Fatalf("unexpected id %q", rec.ID)
		}
		if _, dup := seen[rec.ID]; dup {
			t.Fatalf("duplicate id %q", rec.ID)
		}
		seen[rec.ID] = struct{}{}
	}
}

type failingSink struct {
	appendErr error
	readErr   error
}

func (f failingSink) Append(context.Context, record.Record) error { return f.appendErr }
func (f failingSink) ReadAll(context.Context) ([]record.Record, error) {
	return nil, f.readErr
}

func TestCommit_SinkFailureIsRecoverable(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("quota exceeded")
	committer := record.NewCommitter(failingSink{appendErr: boom})

	_, ok, err := committer.Commit(ctx, completeValues())
	if ok {
		t.Fatalf("failed commit must not report success")
	}
	if !errors.Is(err, record.ErrSinkUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped sink error, got %v", err)
	}

	_, _, err = record.NewCommitter(failingSink{readErr: boom}).Commit(ctx, completeValues())
	if !errors.Is(err, record.ErrSinkUnavailable) {
		t.Fatalf("expected sink unavailable on count failure, got %v", err)
	}
}

func TestCommit_NilSink(t *testing.T) {
	_, _, err := record.NewCommitter(nil).Commit(context.Background(), completeValues())
	if !errors.Is(err, record.ErrNilSink) {
		t.Fatalf("expected ErrNilSink, got %v", err)
	}
}

func TestGeneratorFor(t *testing.T) {
	gen, err := record.GeneratorFor("", "")
	if err != nil {
		t.Fatalf("default generator: %v", err)
	}
	if got := gen(0); got != "User-1" {
		t.Fatalf("default id = %q", got)
	}
	if _, err := record.GeneratorFor("snowflake", ""); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestRecord_ValuesAndNetwork(t *testing.T) {
	rec := record.New("User-1", completeValues(), fixedNow)
	if rec.Values() != completeValues() {
		t.Fatalf("values round trip mismatch: %+v", rec.Values())
	}
	if rec.Network() != card.NetworkVisa {
		t.Fatalf("expected visa, got %s", rec.Network())
	}
}

func TestRecord_Redacted(t *testing.T) {
	rec := record.New("User-1", completeValues(), fixedNow)
	red := rec.Redacted()
	if red.Number != "**** **** **** 1111" || red.CVV != "***" {
		t.Fatalf("unexpected redaction: %+v", red)
	}
	if red.ID != rec.ID || red.Holder != rec.Holder || !red.Timestamp.Equal(rec.Timestamp) {
		t.Fatalf("redaction must keep non-sensitive fields: %+v", red)
	}
	if rec.Number == red.Number {
		t.Fatalf("original record must be untouched")
	}
}
