package orchestrator

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-cardform/internal/config"
	"github.com/goliatone/go-cardform/internal/logger"
	"github.com/goliatone/go-cardform/pkg/record"
	"github.com/goliatone/go-cardform/pkg/store/jsonfile"
	"github.com/goliatone/go-cardform/pkg/store/memory"
	"github.com/goliatone/go-cardform/pkg/store/redis"
	"github.com/goliatone/go-cardform/pkg/store/sqlite"
)

// OpenSink builds the sink selected by cfg.Driver. The returned closer is
// nil for drivers that hold no resources.
func OpenSink(ctx context.Context, cfg config.StoreConfig) (record.Sink, io.Closer, error) {
	switch cfg.Driver {
	case "", config.DriverMemory:
		return memory.New(), nil, nil
	case config.DriverJSONFile:
		store, err := jsonfile.New(cfg.Path, jsonfile.WithKey(cfg.Key))
		if err != nil {
			return nil, nil, fmt.Errorf("orchestrator: open jsonfile store: %w", err)
		}
		return store, nil, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Path, sqlite.WithKey(cfg.Key))
		if err != nil {
			return nil, nil, fmt.Errorf("orchestrator: open sqlite store: %w", err)
		}
		return store, store, nil
	case config.DriverRedis:
		store, err := redis.Dial(ctx, cfg.RedisAddr, redis.WithKey(cfg.Key))
		if err != nil {
			return nil, nil, fmt.Errorf("orchestrator: open redis store: %w", err)
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("orchestrator: unknown store driver %q", cfg.Driver)
	}
}

// FromConfig opens the configured sink and builds an Orchestrator around it.
// Extra options are applied after the configuration-derived ones. Callers
// must Close the orchestrator to release the sink.
func FromConfig(ctx context.Context, cfg *config.Config, log logger.Logger, options ...Option) (*Orchestrator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	ids, err := record.GeneratorFor(record.IDStrategy(cfg.Records.IDStrategy), cfg.Records.IDPrefix)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	sink, closer, err := OpenSink(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	logger.OrNop(log).Debug("store opened", "driver", cfg.Store.Driver, "key", cfg.Store.Key)

	base := []Option{
		WithSink(sink),
		WithCloser(closer),
		WithCommitterOptions(record.WithIDGenerator(ids)),
		WithNextURL(cfg.Form.NextURL),
		WithLogger(log),
	}
	o, err := New(append(base, options...)...)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	return o, nil
}
