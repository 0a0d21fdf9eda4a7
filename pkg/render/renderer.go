package render

import (
	"context"

	"github.com/goliatone/go-cardform/pkg/display"
)

// Renderer turns a card preview frame into bytes (HTML, text, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view display.View, options RenderOptions) ([]byte, error)
}
