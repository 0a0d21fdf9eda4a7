package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-cardform/internal/logger"
	"github.com/goliatone/go-cardform/pkg/card"
	"github.com/goliatone/go-cardform/pkg/form"
	"github.com/goliatone/go-cardform/pkg/record"
	"github.com/goliatone/go-cardform/pkg/render"
	"github.com/goliatone/go-cardform/pkg/renderers/text"
)

// Menu actions offered after the preview.
const (
	ActionContinue   = "Continue"
	ActionEditNumber = "Edit card number"
	ActionEditHolder = "Edit card holder"
	ActionEditExpiry = "Edit expiry"
	ActionEditCVV    = "Edit CVV"
	ActionToggleCVV  = "Show/hide CVV"
	ActionCancel     = "Cancel"
)

var actions = []string{
	ActionContinue,
	ActionEditNumber,
	ActionEditHolder,
	ActionEditExpiry,
	ActionEditCVV,
	ActionToggleCVV,
	ActionCancel,
}

var editTargets = map[string]card.Field{
	ActionEditNumber: card.FieldNumber,
	ActionEditHolder: card.FieldHolder,
	ActionEditExpiry: card.FieldExpiry,
	ActionEditCVV:    card.FieldCVV,
}

var prompts = map[card.Field]string{
	card.FieldNumber: "Card number",
	card.FieldHolder: "Card holder",
	card.FieldExpiry: "Expiry (MM/YY)",
	card.FieldCVV:    "CVV",
}

// Session walks a user through filling a form in the terminal: it prompts
// every field, previews the card, and commits once the user continues with a
// complete form and confirms the save.
type Session struct {
	driver    PromptDriver
	out       io.Writer
	clipboard Clipboard
	preview   render.Renderer
	theme     Theme
	log       logger.Logger
}

// New constructs a session with defaults (survey driver, text preview).
func New(options ...Option) (*Session, error) {
	s := &Session{
		preview: text.New(),
		log:     logger.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = newSurveyDriver(s.out)
	}
	return s, nil
}

// Run prompts every field of f, then loops on the action menu until a
// commit succeeds or the user cancels. Incomplete forms and retryable sink
// failures are reported and the menu is shown again.
func (s *Session) Run(ctx context.Context, f *form.Form) (record.Record, error) {
	if ctx == nil {
		return record.Record{}, errors.New("tui: context is required")
	}
	if f == nil {
		return record.Record{}, errors.New("tui: form is required")
	}

	for _, field := range card.Fields {
		if err := s.promptField(ctx, f, field); err != nil {
			return record.Record{}, err
		}
	}

	for {
		if err := s.showPreview(ctx, f); err != nil {
			return record.Record{}, err
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      "What next?",
			Options:      actions,
			DefaultIndex: 0,
		})
		if err != nil {
			return record.Record{}, err
		}
		if idx < 0 || idx >= len(actions) {
			s.notice(ctx, s.theme.ErrorPrefix, "Unknown action")
			continue
		}

		switch action := actions[idx]; action {
		case ActionCancel:
			return record.Record{}, ErrAborted
		case ActionToggleCVV:
			f.ToggleCVV()
		case ActionContinue:
			rec, done, err := s.commit(ctx, f)
			if err != nil {
				return record.Record{}, err
			}
			if done {
				return rec, nil
			}
		default:
			if err := s.promptField(ctx, f, editTargets[action]); err != nil {
				return record.Record{}, err
			}
		}
	}
}

func (s *Session) commit(ctx context.Context, f *form.Form) (record.Record, bool, error) {
	if !f.State().Complete {
		s.notice(ctx, s.theme.ErrorPrefix, "The card is incomplete")
		return record.Record{}, false, nil
	}
	confirmed, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Save card %s?", card.MaskNumber(f.State().Values.Number)),
		Default: true,
	})
	if err != nil {
		return record.Record{}, false, err
	}
	if !confirmed {
		s.notice(ctx, s.theme.InfoPrefix, "Not saved")
		return record.Record{}, false, nil
	}
	rec, ok, err := f.Commit(ctx)
	switch {
	case errors.Is(err, record.ErrSinkUnavailable):
		s.log.Warn("commit failed", "error", err)
		s.notice(ctx, s.theme.ErrorPrefix, "Could not save the card, try again")
		return record.Record{}, false, nil
	case err != nil:
		return record.Record{}, false, err
	case !ok:
		s.notice(ctx, s.theme.ErrorPrefix, "The card is incomplete")
		return record.Record{}, false, nil
	}
	s.notice(ctx, s.theme.InfoPrefix, fmt.Sprintf("Saved %s", rec.ID))
	return rec, true, nil
}

func (s *Session) promptField(ctx context.Context, f *form.Form, field card.Field) error {
	cfg := InputConfig{
		Message: prompts[field] + ":",
		Default: f.State().Values.Get(field),
	}
	if s.clipboard != nil {
		cfg.Help = fmt.Sprintf("Type %s to paste from the clipboard", PasteToken)
	}

	var (
		raw string
		err error
	)
	if field == card.FieldCVV {
		cfg.Default = ""
		raw, err = s.driver.Password(ctx, cfg)
	} else {
		raw, err = s.driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}

	if s.clipboard != nil && strings.TrimSpace(raw) == PasteToken {
		pasted, err := s.clipboard.ReadAll()
		if err != nil {
			s.log.Warn("clipboard read failed", "error", err)
			s.notice(ctx, s.theme.ErrorPrefix, "Clipboard is not available")
			return s.promptField(ctx, f, field)
		}
		f.Paste(field, pasted)
		return nil
	}
	f.Input(field, raw)
	return nil
}

func (s *Session) showPreview(ctx context.Context, f *form.Form) error {
	out, err := s.preview.Render(ctx, f.State().View(), render.RenderOptions{})
	if err != nil {
		return fmt.Errorf("tui: preview: %w", err)
	}
	return s.driver.Info(ctx, strings.TrimRight(string(out), "\n"))
}

func (s *Session) notice(ctx context.Context, prefix, msg string) {
	_ = s.driver.Info(ctx, prefix+msg)
}
