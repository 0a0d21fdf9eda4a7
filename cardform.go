// Package cardform is the top-level entry point of the card entry pipeline.
// It re-exports the most common types and offers one-call helpers; the
// packages under pkg/ hold the full API.
package cardform

import (
	"context"

	"github.com/goliatone/go-cardform/pkg/card"
	"github.com/goliatone/go-cardform/pkg/form"
	"github.com/goliatone/go-cardform/pkg/orchestrator"
	"github.com/goliatone/go-cardform/pkg/render"
)

// Values holds the canonical value of every card field.
type Values = card.Values

// Network is the card network inferred from the number prefix.
type Network = card.Network

// RenderOptions describes per-request presentation data for previews.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(options...)
}

// NewForm returns a form wired to a fresh in-memory orchestrator. It suits
// demos and tests; production callers build an orchestrator from config.
func NewForm(options ...form.Option) (*form.Form, error) {
	o, err := orchestrator.New()
	if err != nil {
		return nil, err
	}
	return o.NewForm(options...), nil
}

// Normalize returns the canonical form of every raw value.
func Normalize(raw Values) Values {
	return card.NormalizeValues(raw)
}

// Classify reports the network of a raw or canonical number.
func Classify(number string) Network {
	return card.ClassifyNumber(card.NormalizeNumber(number))
}

// Complete reports whether raw values, once normalized, pass the gate.
func Complete(raw Values) bool {
	return card.Complete(card.NormalizeValues(raw))
}

// GenerateHTML normalizes raw values and renders the HTML card preview. It
// is the simplest entry point for callers that just want markup.
func GenerateHTML(ctx context.Context, raw Values, cvvVisible bool, options ...orchestrator.Option) ([]byte, error) {
	o, err := orchestrator.New(options...)
	if err != nil {
		return nil, err
	}
	return o.Preview(ctx, orchestrator.Request{
		Values:     raw,
		CVVVisible: cvvVisible,
		Renderer:   "vanilla",
	})
}
