package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardform/pkg/card"
	"github.com/goliatone/go-cardform/pkg/form"
	"github.com/goliatone/go-cardform/pkg/record"
	"github.com/goliatone/go-cardform/pkg/store/memory"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	selects      []string
	confirms     []bool
	confirmMsgs  []string
	infoMessages []string
	inputConfigs []InputConfig
	inputPos     int
	passPos      int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

// Confirm answers with the scripted values, then with the prompt default.
func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.confirmMsgs = append(s.confirmMsgs, cfg.Message)
	if s.confirmPos >= len(s.confirms) {
		return cfg.Default, nil
	}
	val := s.confirms[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selects) {
		return -1, errors.New("no select scripted")
	}
	val := s.selects[s.selectPos]
	s.selectPos++
	return indexOf(cfg.Options, val), nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) sawInfo(substr string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

type failingSink struct {
	fails int
	inner *memory.Store
}

func (f *failingSink) Append(ctx context.Context, rec record.Record) error {
	if f.fails > 0 {
		f.fails--
		return errors.New("disk full")
	}
	return f.inner.Append(ctx, rec)
}

func (f *failingSink) ReadAll(ctx context.Context) ([]record.Record, error) {
	return f.inner.ReadAll(ctx)
}

func newForm(sink record.Sink) *form.Form {
	return form.New(form.WithCommitter(record.NewCommitter(sink)))
}

func TestSession_FillAndCommit(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"4111-1111-1111-1111", "  jane doe ", "1230"},
		passwords: []string{"12a3"},
		selects:   []string{ActionContinue},
	}
	store := memory.New()
	f := newForm(store)

	s, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	rec, err := s.Run(context.Background(), f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := card.Values{Number: "4111 1111 1111 1111", Holder: "JANE DOE", Expiry: "12/30", CVV: "123"}
	if diff := cmp.Diff(want, rec.Values()); diff != "" {
		t.Fatalf("committed values mismatch (-want +got):\n%s", diff)
	}
	if rec.ID != "User-1" {
		t.Fatalf("expected User-1, got %s", rec.ID)
	}
	if !driver.sawInfo("VISA") || !driver.sawInfo("Saved User-1") {
		t.Fatalf("expected preview and confirmation, got %q", driver.infoMessages)
	}
	if driver.sawInfo("123") {
		t.Fatalf("masked preview leaked the CVV: %q", driver.infoMessages)
	}
}

func TestSession_IncompleteLoopsUntilEdited(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"4111 1111 1111", "jane", "12/30", "4111111111111111"},
		passwords: []string{"123"},
		selects:   []string{ActionContinue, ActionEditNumber, ActionContinue},
	}
	store := memory.New()
	s, _ := New(WithPromptDriver(driver))

	rec, err := s.Run(context.Background(), newForm(store))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !driver.sawInfo("The card is incomplete") {
		t.Fatalf("expected incomplete notice, got %q", driver.infoMessages)
	}
	if rec.Number != "4111 1111 1111 1111" {
		t.Fatalf("unexpected number %q", rec.Number)
	}
	if n, _ := store.Count(context.Background()); n != 1 {
		t.Fatalf("expected exactly one record, got %d", n)
	}
	// The edit prompt is pre-filled with the current canonical value.
	if got := driver.inputConfigs[4].Default; got != "4111 1111 1111" {
		t.Fatalf("expected edit default to be the current number, got %q", got)
	}
}

func TestSession_ToggleCVVShowsDigits(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"5500000000000004", "ann", "0129"},
		passwords: []string{"987"},
		selects:   []string{ActionToggleCVV, ActionCancel},
	}
	s, _ := New(WithPromptDriver(driver))

	_, err := s.Run(context.Background(), newForm(memory.New()))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if !driver.sawInfo("CVV 987") {
		t.Fatalf("expected flipped preview with plain CVV, got %q", driver.infoMessages)
	}
}

func TestSession_PasteFromClipboard(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{PasteToken, "jane", PasteToken},
		passwords: []string{"123"},
		selects:   []string{ActionCancel},
	}
	f := newForm(memory.New())
	s, _ := New(WithPromptDriver(driver), WithClipboard(StaticClipboard("4111 1111-1111 1111 99999")))

	_, _ = s.Run(context.Background(), f)

	got := f.State().Values
	if got.Number != "4111 1111 1111 1111 999" {
		t.Fatalf("unexpected pasted number %q", got.Number)
	}
	if got.Expiry != "41/11" {
		t.Fatalf("unexpected pasted expiry %q", got.Expiry)
	}
	if !strings.Contains(driver.inputConfigs[0].Help, PasteToken) {
		t.Fatalf("expected paste hint, got %q", driver.inputConfigs[0].Help)
	}
}

func TestSession_PasteTokenIsLiteralWithoutClipboard(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{PasteToken, ":paste", "12"},
		passwords: []string{""},
		selects:   []string{ActionCancel},
	}
	f := newForm(memory.New())
	s, _ := New(WithPromptDriver(driver))
	_, _ = s.Run(context.Background(), f)

	got := f.State().Values
	if got.Number != "" || got.Holder != ":PASTE" {
		t.Fatalf("unexpected values %+v", got)
	}
}

func TestSession_SinkFailureIsRetryable(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"4111111111111111", "jane", "1230"},
		passwords: []string{"123"},
		selects:   []string{ActionContinue, ActionContinue},
	}
	sink := &failingSink{fails: 1, inner: memory.New()}
	s, _ := New(WithPromptDriver(driver))

	rec, err := s.Run(context.Background(), newForm(sink))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !driver.sawInfo("Could not save the card") {
		t.Fatalf("expected retry notice, got %q", driver.infoMessages)
	}
	if rec.ID != "User-1" {
		t.Fatalf("expected User-1 after retry, got %s", rec.ID)
	}
}

func TestSession_PromptErrorsPropagate(t *testing.T) {
	s, _ := New(WithPromptDriver(&stubDriver{}))
	if _, err := s.Run(context.Background(), newForm(memory.New())); err == nil {
		t.Fatalf("expected driver error")
	}
	if _, err := s.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected nil form error")
	}
}

func TestSession_DecliningConfirmLeavesSinkUntouched(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"4111111111111111", "jane", "1230"},
		passwords: []string{"123"},
		selects:   []string{ActionContinue, ActionCancel},
		confirms:  []bool{false},
	}
	store := memory.New()
	s, _ := New(WithPromptDriver(driver))

	_, err := s.Run(context.Background(), newForm(store))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Fatalf("declined commit stored %d records", n)
	}
	if !driver.sawInfo("Not saved") {
		t.Fatalf("expected not saved notice, got %q", driver.infoMessages)
	}
	want := []string{"Save card **** **** **** 1111?"}
	if diff := cmp.Diff(want, driver.confirmMsgs); diff != "" {
		t.Fatalf("confirm prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_IncompleteFormSkipsConfirm(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"4111", "jane", "1230"},
		passwords: []string{"123"},
		selects:   []string{ActionContinue, ActionCancel},
	}
	s, _ := New(WithPromptDriver(driver))
	_, _ = s.Run(context.Background(), newForm(memory.New()))
	if len(driver.confirmMsgs) != 0 {
		t.Fatalf("confirm shown for incomplete form: %q", driver.confirmMsgs)
	}
}
