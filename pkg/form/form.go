package form

import (
	"context"
	"errors"

	"github.com/goliatone/go-cardform/internal/logger"
	"github.com/goliatone/go-cardform/pkg/card"
	"github.com/goliatone/go-cardform/pkg/display"
	"github.com/goliatone/go-cardform/pkg/record"
)

// DefaultNextURL is signalled to the navigator after a successful commit.
const DefaultNextURL = "play.html"

// ErrNoCommitter is returned by Commit when the form was built without one.
var ErrNoCommitter = errors.New("form: committer is not configured")

// State is the derived output of one pipeline pass.
type State struct {
	Values     card.Values  `json:"values"`
	Network    card.Network `json:"network"`
	Complete   bool         `json:"complete"`
	CVVVisible bool         `json:"cvvVisible"`
}

// View projects the state for display.
func (s State) View() display.View {
	return display.Project(s.Values, s.CVVVisible)
}

// Listener receives the state after every event.
type Listener func(State)

// Navigator is signalled with the next location once a record is committed.
type Navigator func(ctx context.Context, next string, rec record.Record)

// Option configures a Form.
type Option func(*Form)

// WithCommitter wires the commit bridge.
func WithCommitter(c *record.Committer) Option {
	return func(f *Form) {
		f.committer = c
	}
}

// WithNavigator registers the post-commit navigation callback.
func WithNavigator(nav Navigator) Option {
	return func(f *Form) {
		f.navigate = nav
	}
}

// WithNextURL overrides DefaultNextURL.
func WithNextURL(next string) Option {
	return func(f *Form) {
		if next != "" {
			f.nextURL = next
		}
	}
}

// WithListener registers a change listener at construction time.
func WithListener(l Listener) Option {
	return func(f *Form) {
		if l != nil {
			f.listeners = append(f.listeners, l)
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l logger.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// Form owns the canonical field values of one card entry session.
type Form struct {
	values     card.Values
	network    card.Network
	complete   bool
	cvvVisible bool

	listeners []Listener
	committer *record.Committer
	navigate  Navigator
	nextURL   string
	log       logger.Logger
}

// New returns an empty form.
func New(options ...Option) *Form {
	f := &Form{
		network: card.NetworkNone,
		nextURL: DefaultNextURL,
		log:     logger.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// OnChange registers a listener for subsequent events.
func (f *Form) OnChange(l Listener) {
	if l != nil {
		f.listeners = append(f.listeners, l)
	}
}

// State returns the current derived state.
func (f *Form) State() State {
	return State{
		Values:     f.values,
		Network:    f.network,
		Complete:   f.complete,
		CVVVisible: f.cvvVisible,
	}
}

// Input handles a change event carrying the field's full raw value.
func (f *Form) Input(field card.Field, raw string) State {
	value := card.Normalize(field, raw)
	f.values = f.values.With(field, value)
	if field == card.FieldNumber {
		f.network = card.ClassifyNumber(value)
	}
	f.complete = card.Complete(f.values)
	f.log.Debug("field changed", "field", field, "length", len(value), "network", f.network, "complete", f.complete)
	return f.emit()
}

// Paste handles a paste event. Number and expiry suppress the default paste,
// sanitize the clipboard text, write it back as the full field value and
// re-enter Input. Holder and CVV keep the default paste, but Form tracks no
// caret, so the pasted text replaces the whole field rather than being
// inserted at a cursor position. Callers that edit at a caret splice the text
// themselves and call Input.
func (f *Form) Paste(field card.Field, text string) State {
	if sanitized, ok := card.SanitizePaste(field, text); ok {
		return f.Input(field, sanitized)
	}
	return f.Input(field, text)
}

// SetCVVVisible switches the CVV display between plain digits and the mask.
// The canonical CVV is unaffected.
func (f *Form) SetCVVVisible(visible bool) State {
	f.cvvVisible = visible
	return f.emit()
}

// ToggleCVV flips the CVV visibility.
func (f *Form) ToggleCVV() State {
	return f.SetCVVVisible(!f.cvvVisible)
}

// Commit re-checks the gate and persists a record through the committer. An
// incomplete form is inert and returns ok=false with a nil error. Sink
// failures leave the form untouched so the commit can be retried.
func (f *Form) Commit(ctx context.Context) (record.Record, bool, error) {
	if f.committer == nil {
		return record.Record{}, false, ErrNoCommitter
	}
	rec, ok, err := f.committer.Commit(ctx, f.values)
	if err != nil || !ok {
		return rec, ok, err
	}
	if f.navigate != nil {
		f.navigate(ctx, f.nextURL, rec)
	}
	return rec, true, nil
}

// Reset clears every field and hides the CVV.
func (f *Form) Reset() State {
	f.values = card.Values{}
	f.network = card.NetworkNone
	f.complete = false
	f.cvvVisible = false
	return f.emit()
}

func (f *Form) emit() State {
	state := f.State()
	for _, l := range f.listeners {
		l(state)
	}
	return state
}
