// Package text renders the card preview as a boxed plain-text block for
// terminals and logs.
package text

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-cardform/pkg/display"
	"github.com/goliatone/go-cardform/pkg/render"
)

const innerWidth = 32

// Renderer draws the front (or back, while flipped) of the card.
type Renderer struct{}

var _ render.Renderer = Renderer{}

// New returns a text renderer.
func New() Renderer {
	return Renderer{}
}

func (Renderer) Name() string {
	return "text"
}

func (Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (Renderer) Render(_ context.Context, view display.View, options render.RenderOptions) ([]byte, error) {
	var b strings.Builder
	if options.Title != "" {
		b.WriteString(options.Title)
		b.WriteByte('\n')
	}

	border := "+" + strings.Repeat("-", innerWidth+2) + "+\n"
	b.WriteString(border)
	if view.Flipped {
		line(&b, "")
		line(&b, strings.Repeat("#", innerWidth))
		line(&b, padLeft("CVV "+view.CVV, innerWidth))
		line(&b, "")
	} else {
		line(&b, padLeft(view.Present.Label, innerWidth))
		line(&b, "")
		line(&b, view.Number)
		line(&b, spread(view.Holder, view.Expiry, innerWidth))
	}
	b.WriteString(border)

	status := "incomplete"
	if view.Complete {
		status = "ready"
	}
	fmt.Fprintf(&b, "network: %s  status: %s\n", view.Network, status)
	for _, msg := range options.Messages {
		fmt.Fprintf(&b, "! %s\n", msg)
	}
	return []byte(b.String()), nil
}

func line(b *strings.Builder, content string) {
	width := utf8.RuneCountInString(content)
	if width > innerWidth {
		content = string([]rune(content)[:innerWidth])
		width = innerWidth
	}
	b.WriteString("| ")
	b.WriteString(content)
	b.WriteString(strings.Repeat(" ", innerWidth-width))
	b.WriteString(" |\n")
}

func padLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

func spread(left, right string, width int) string {
	gap := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
