// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardform/pkg/card"
	"github.com/goliatone/go-cardform/pkg/record"
)

// FixedTime is the clock reading used by fixtures.
var FixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// Clock returns FixedTime on every call.
func Clock() time.Time {
	return FixedTime
}

// CompleteVisa returns canonical values that satisfy the completeness gate.
func CompleteVisa() card.Values {
	return card.Values{
		Number: "4111 1111 1111 1111",
		Holder: "JANE DOE",
		Expiry: "12/29",
		CVV:    "123",
	}
}

// CompleteMastercard returns canonical values for the 2-series range.
func CompleteMastercard() card.Values {
	return card.Values{
		Number: "2221 0000 0000 0009",
		Holder: "JOHN ROE",
		Expiry: "01/31",
		CVV:    "4567",
	}
}

// SampleRecords returns n records with sequence ids stamped at FixedTime.
func SampleRecords(n int) []record.Record {
	out := make([]record.Record, 0, n)
	for i := range n {
		values := CompleteVisa()
		if i%2 == 1 {
			values = CompleteMastercard()
		}
		out = append(out, record.New(fmt.Sprintf("User-%d", i+1), values, FixedTime.Add(time.Duration(i)*time.Minute)))
	}
	return out
}

// LoadRecords reads a JSON array of records, returning an error for callers
// managing setup outside of *testing.T.
func LoadRecords(path string) ([]record.Record, error) {
	if path == "" {
		return nil, errors.New("testsupport: records path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read records: %w", err)
	}
	var out []record.Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal records: %w", err)
	}
	return out, nil
}

// MustLoadRecords is LoadRecords failing the test on error.
func MustLoadRecords(t *testing.T, path string) []record.Record {
	t.Helper()
	out, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
