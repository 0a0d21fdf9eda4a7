package cardform

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-cardform/internal/logger"
	"github.com/goliatone/go-cardform/pkg/form"
	"github.com/goliatone/go-cardform/pkg/record"
	"github.com/goliatone/go-cardform/pkg/render"
)

// DefaultMaxBodyBytes bounds JSON request bodies.
const DefaultMaxBodyBytes int64 = 64 << 10

type GuardFunc func(r *http.Request) error

type Options struct {
	// Committer backs POST /commit and GET /records. Both routes are
	// omitted when nil.
	Committer *record.Committer
	// Renderers backs POST /preview. The route is omitted when nil.
	Renderers *render.Registry
	// NextURL is returned to the client after a successful commit.
	NextURL string
	// RevealRecords lists records unredacted.
	RevealRecords bool
	MaxBodyBytes  int64
	Guard         GuardFunc
	Logger        logger.Logger
	// Registerer receives the component metrics. A private registry is used
	// when nil, exposed at GET /metrics.
	Registerer prometheus.Registerer
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		NextURL:      form.DefaultNextURL,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.NextURL == "" {
		opts.NextURL = form.DefaultNextURL
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	opts.Logger = logger.OrNop(opts.Logger)
	return opts
}

func WithCommitter(c *record.Committer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Committer = c
	}
}

func WithRenderers(reg *render.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderers = reg
	}
}

func WithNextURL(next string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.NextURL = next
	}
}

func WithRevealRecords(reveal bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RevealRecords = reveal
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(l logger.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = l
	}
}

func WithRegisterer(reg prometheus.Registerer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registerer = reg
	}
}
