package record

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IDStrategy names a record id generator.
type IDStrategy string

const (
	// IDStrategySequence derives ids from the sink length.
	IDStrategySequence IDStrategy = "sequence"
	// IDStrategyUUID uses random UUIDs.
	IDStrategyUUID IDStrategy = "uuid"
)

// IDGenerator returns the id of the next record given the current sink length.
type IDGenerator func(count int) string

// SequenceIDs yields "<prefix>-<count+1>". An empty prefix falls back to
// "User".
func SequenceIDs(prefix string) IDGenerator {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "User"
	}
	return func(count int) string {
		return fmt.Sprintf("%s-%d", prefix, count+1)
	}
}

// UUIDs ignores the sink length and returns a random UUID prefixed with
// prefix when one is provided.
func UUIDs(prefix string) IDGenerator {
	prefix = strings.TrimSpace(prefix)
	return func(int) string {
		id := uuid.NewString()
		if prefix == "" {
			return id
		}
		return prefix + "-" + id
	}
}

// GeneratorFor resolves a strategy name into a generator.
func GeneratorFor(strategy IDStrategy, prefix string) (IDGenerator, error) {
	switch IDStrategy(strings.ToLower(strings.TrimSpace(string(strategy)))) {
	case "", IDStrategySequence:
		return SequenceIDs(prefix), nil
	case IDStrategyUUID:
		return UUIDs(prefix), nil
	default:
		return nil, fmt.Errorf("record: unknown id strategy %q", strategy)
	}
}
