package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardform/pkg/display"
)

// RenderOptions carry per-request data that renderers can use without
// changing the projected view.
type RenderOptions struct {
	// Title overrides the heading shown above the preview.
	Title string
	// CommitURL is where the continue action posts. Renderers disable the
	// action while the view is incomplete.
	CommitURL string
	// Messages are form-level notices, e.g. a failed commit that can be
	// retried.
	Messages []string
	// Theme replaces the network theme resolved by the display package.
	Theme *theme.RendererConfig
}

// ResolveTheme returns the override theme when present, else the view's.
func (o RenderOptions) ResolveTheme(view display.View) *theme.RendererConfig {
	if o.Theme != nil {
		return o.Theme
	}
	return view.Theme
}
