package tui

import (
	"io"

	"github.com/goliatone/go-cardform/internal/logger"
	"github.com/goliatone/go-cardform/pkg/render"
)

// PasteToken typed at a field prompt pastes the clipboard into that field.
const PasteToken = ":paste"

// Theme captures optional prefixes the session applies when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints previews and notices.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		s.out = out
	}
}

// WithClipboard enables PasteToken handling.
func WithClipboard(cb Clipboard) Option {
	return func(s *Session) {
		s.clipboard = cb
	}
}

// WithPreview swaps the renderer used to draw the card between prompts.
func WithPreview(renderer render.Renderer) Option {
	return func(s *Session) {
		if renderer != nil {
			s.preview = renderer
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		s.log = logger.OrNop(l)
	}
}
