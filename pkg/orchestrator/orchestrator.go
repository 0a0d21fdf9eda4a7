package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goliatone/go-cardform/internal/logger"
	"github.com/goliatone/go-cardform/pkg/card"
	"github.com/goliatone/go-cardform/pkg/display"
	"github.com/goliatone/go-cardform/pkg/form"
	"github.com/goliatone/go-cardform/pkg/record"
	"github.com/goliatone/go-cardform/pkg/render"
	"github.com/goliatone/go-cardform/pkg/renderers/text"
	"github.com/goliatone/go-cardform/pkg/renderers/vanilla"
	"github.com/goliatone/go-cardform/pkg/store/memory"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithSink injects the persistence sink. An in-memory store is used when
// omitted.
func WithSink(sink record.Sink) Option {
	return func(o *Orchestrator) {
		o.sink = sink
	}
}

// WithCloser registers a function run by Close, e.g. to release the sink.
func WithCloser(closer io.Closer) Option {
	return func(o *Orchestrator) {
		if closer != nil {
			o.closers = append(o.closers, closer)
		}
	}
}

// WithRegistry injects a preview renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer selects the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithCommitterOptions forwards options (id generator, clock) to the commit
// bridge.
func WithCommitterOptions(options ...record.CommitterOption) Option {
	return func(o *Orchestrator) {
		o.committerOptions = append(o.committerOptions, options...)
	}
}

// WithNextURL overrides the navigation target reported after a commit.
func WithNextURL(next string) Option {
	return func(o *Orchestrator) {
		o.nextURL = next
	}
}

// WithNavigator registers the callback forms signal after a commit.
func WithNavigator(nav form.Navigator) Option {
	return func(o *Orchestrator) {
		o.navigator = nav
	}
}

// WithLogger attaches a structured logger shared with the committer and forms.
func WithLogger(l logger.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// Orchestrator owns the long-lived collaborators of a card form deployment.
// Forms it creates share one committer, so commits are serialized.
type Orchestrator struct {
	sink             record.Sink
	closers          []io.Closer
	committer        *record.Committer
	committerOptions []record.CommitterOption
	registry         *render.Registry
	defaultRenderer  string
	nextURL          string
	navigator        form.Navigator
	log              logger.Logger
	initialiseErr    error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		nextURL:         form.DefaultNextURL,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}
	return o, nil
}

// Request describes a preview to render.
type Request struct {
	// Values are raw field values; they are normalized before projection.
	Values card.Values
	// CVVVisible shows the CVV digits and flips the card.
	CVVVisible bool
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string
	// RenderOptions carries per-request presentation data.
	RenderOptions render.RenderOptions
}

// Preview normalizes the request values, projects them and renders the
// result with the requested renderer.
func (o *Orchestrator) Preview(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}
	view := display.Project(card.NormalizeValues(req.Values), req.CVVVisible)
	output, err := renderer.Render(ctx, view, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// NewForm returns an empty form wired to the shared committer, navigator and
// next URL. Extra options are applied last.
func (o *Orchestrator) NewForm(options ...form.Option) *form.Form {
	base := []form.Option{
		form.WithCommitter(o.committer),
		form.WithNextURL(o.nextURL),
		form.WithLogger(o.log),
	}
	if o.navigator != nil {
		base = append(base, form.WithNavigator(o.navigator))
	}
	return form.New(append(base, options...)...)
}

// Committer exposes the shared commit bridge.
func (o *Orchestrator) Committer() *record.Committer {
	return o.committer
}

// Registry exposes the preview renderers.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// NextURL reports the navigation target signalled after commits.
func (o *Orchestrator) NextURL() string {
	return o.nextURL
}

// Records lists every stored record.
func (o *Orchestrator) Records(ctx context.Context) ([]record.Record, error) {
	return o.committer.List(ctx)
}

// Close releases registered closers in reverse order.
func (o *Orchestrator) Close() error {
	var errs []error
	for i := len(o.closers) - 1; i >= 0; i-- {
		if err := o.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	o.closers = nil
	return errors.Join(errs...)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	o.log = logger.OrNop(o.log)
	if o.nextURL == "" {
		o.nextURL = form.DefaultNextURL
	}
	if o.sink == nil {
		o.sink = memory.New()
	}
	options := append([]record.CommitterOption{record.WithLogger(o.log)}, o.committerOptions...)
	o.committer = record.NewCommitter(o.sink, options...)

	if o.registry == nil {
		html, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(html, text.New())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
			return
		}
		o.registry = registry
	}
}
