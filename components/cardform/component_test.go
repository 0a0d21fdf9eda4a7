package cardform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-cardform/pkg/card"
	"github.com/goliatone/go-cardform/pkg/record"
	"github.com/goliatone/go-cardform/pkg/render"
	"github.com/goliatone/go-cardform/pkg/renderers/text"
	"github.com/goliatone/go-cardform/pkg/store/memory"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const completeBody = `{"number":"4111-1111-1111-1111","holder":" jane doe","expiry":"1229","cvv":"123"}`

func newTestComponent(t *testing.T, fns ...OptionFn) (*Component, *memory.Store) {
	t.Helper()
	store := memory.New()
	committer := record.NewCommitter(store, record.WithClock(func() time.Time { return fixedNow }))
	registry, err := render.NewRegistry(text.New())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	base := []OptionFn{WithCommitter(committer), WithRenderers(registry)}
	c, err := New(append(base, fns...)...)
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	return c, store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestDocument_LoadsAndValidates(t *testing.T) {
	doc, err := Document(context.Background())
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	for _, path := range []string{"/classify", "/normalize", "/paste", "/preview", "/commit", "/records"} {
		if doc.Paths.Find(path) == nil {
			t.Errorf("missing path %s", path)
		}
	}
}

func TestHandler_Classify(t *testing.T) {
	c, _ := newTestComponent(t)
	rec := do(t, c.Handler(), http.MethodGet, "/classify?number=2221", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	got := decodeBody[classifyResponse](t, rec)
	if got.Network != card.NetworkMastercard || got.Presentation.Label != "MASTERCARD" {
		t.Fatalf("unexpected classification %+v", got)
	}
}

func TestHandler_Normalize(t *testing.T) {
	c, _ := newTestComponent(t)
	rec := do(t, c.Handler(), http.MethodPost, "/normalize", `{"number":"5512abcd34","expiry":"0","cvvVisible":true,"cvv":"9x8"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	got := decodeBody[stateResponse](t, rec)
	want := card.Values{Number: "5512 34", Expiry: "0", CVV: "98"}
	if got.Values != want {
		t.Fatalf("values = %+v, want %+v", got.Values, want)
	}
	if got.Network != card.NetworkMastercard || got.Complete {
		t.Fatalf("unexpected state %+v", got)
	}
	if got.View.CVV != "98" || !got.View.Flipped || got.View.Holder != "CARD HOLDER" {
		t.Fatalf("unexpected view %+v", got.View)
	}
}

func TestHandler_NormalizeRejectsUnknownProperties(t *testing.T) {
	c, _ := newTestComponent(t)
	rec := do(t, c.Handler(), http.MethodPost, "/normalize", `{"pan":"4111"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeBody[errorResponse](t, rec); !strings.Contains(got.Error, "CardInput") {
		t.Fatalf("unexpected error body %+v", got)
	}

	rec = do(t, c.Handler(), http.MethodPost, "/normalize", `{"number":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestHandler_OverlongRawInputIsNormalized(t *testing.T) {
	c, store := newTestComponent(t)
	number := "4111" + strings.Repeat("-", 300) + "111111111111"
	body, err := json.Marshal(map[string]string{
		"number": number,
		"holder": strings.Repeat(" ", 400) + "jane",
		"expiry": strings.Repeat("/", 100) + "1229",
		"cvv":    "12" + strings.Repeat(" ", 100) + "3",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := do(t, c.Handler(), http.MethodPost, "/normalize", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	state := decodeBody[stateResponse](t, rec)
	if state.Values.Number != "4111 1111 1111 1111" || !state.Complete {
		t.Fatalf("unexpected state %+v", state)
	}

	rec = do(t, c.Handler(), http.MethodPost, "/commit", string(body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if n, _ := store.Count(context.Background()); n != 1 {
		t.Fatalf("expected one stored record, got %d", n)
	}

	paste, _ := json.Marshal(map[string]string{"field": "number", "text": strings.Repeat("4-", 2000)})
	rec = do(t, c.Handler(), http.MethodPost, "/paste", string(paste))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for long paste, got %d: %s", rec.Code, rec.Body)
	}
}

func TestHandler_ValidationErrorsOmitSubmittedValues(t *testing.T) {
	c, _ := newTestComponent(t)
	rec := do(t, c.Handler(), http.MethodPost, "/commit", `{"number":"4111 1111 1111 1111","cvv":987,"pan":"5105105105105100"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	got := decodeBody[errorResponse](t, rec)
	for _, secret := range []string{"4111", "987", "5105"} {
		if strings.Contains(got.Error, secret) {
			t.Fatalf("error body leaks %q: %s", secret, got.Error)
		}
	}
	if !strings.Contains(got.Error, "cvv:") || !strings.Contains(got.Error, "pan") {
		t.Fatalf("expected field paths in error, got %s", got.Error)
	}
}

func TestHandler_Paste(t *testing.T) {
	c, _ := newTestComponent(t)
	cases := []struct {
		body        string
		value       string
		intercepted bool
	}{
		{`{"field":"number","text":"4111 1111-1111 1111"}`, "4111 1111 1111 1111", true},
		{`{"field":"expiry","text":"12/2030"}`, "12/20", true},
		{`{"field":"holder","text":"  ann lee "}`, "ANN LEE", false},
		{`{"field":"cvv","text":"12345"}`, "1234", false},
	}
	for _, tc := range cases {
		rec := do(t, c.Handler(), http.MethodPost, "/paste", tc.body)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.body, rec.Code)
		}
		got := decodeBody[pasteResponse](t, rec)
		if got.Value != tc.value || got.Intercepted != tc.intercepted {
			t.Errorf("%s: got %+v", tc.body, got)
		}
	}

	rec := do(t, c.Handler(), http.MethodPost, "/paste", `{"field":"pin","text":"1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestHandler_CommitAndList(t *testing.T) {
	c, store := newTestComponent(t)
	h := c.Handler()

	rec := do(t, h, http.MethodPost, "/commit", completeBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	got := decodeBody[commitResponse](t, rec)
	if !got.Committed || got.Record == nil || got.Record.ID != "User-1" || got.Next != "play.html" {
		t.Fatalf("unexpected commit response %+v", got)
	}
	if got.Record.Number != "**** **** **** 1111" || got.Record.CVV != "***" {
		t.Fatalf("commit response must be redacted: %+v", got.Record)
	}

	stored, _ := store.ReadAll(context.Background())
	if len(stored) != 1 || stored[0].Number != "4111 1111 1111 1111" || stored[0].Holder != "JANE DOE" {
		t.Fatalf("unexpected stored records %+v", stored)
	}

	rec = do(t, h, http.MethodGet, "/records", "")
	list := decodeBody[recordsResponse](t, rec)
	if len(list.Data) != 1 || list.Data[0].CVV != "***" || !list.Data[0].Timestamp.Equal(fixedNow) {
		t.Fatalf("unexpected listing %+v", list)
	}
}

func TestHandler_RevealRecords(t *testing.T) {
	c, _ := newTestComponent(t, WithRevealRecords(true))
	do(t, c.Handler(), http.MethodPost, "/commit", completeBody)
	list := decodeBody[recordsResponse](t, do(t, c.Handler(), http.MethodGet, "/records", ""))
	if len(list.Data) != 1 || list.Data[0].CVV != "123" {
		t.Fatalf("expected unredacted listing, got %+v", list)
	}
}

func TestHandler_IncompleteCommitIsInert(t *testing.T) {
	c, store := newTestComponent(t)
	rec := do(t, c.Handler(), http.MethodPost, "/commit", `{"number":"4111 1111 1111 111","holder":"x","expiry":"12/29","cvv":"123"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if got := decodeBody[commitResponse](t, rec); got.Committed {
		t.Fatalf("expected committed=false")
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Fatalf("inert commit stored %d records", n)
	}
}

type brokenSink struct{}

func (brokenSink) Append(context.Context, record.Record) error { return errors.New("offline") }
func (brokenSink) ReadAll(context.Context) ([]record.Record, error) {
	return nil, nil
}

func TestHandler_SinkFailureMapsTo503(t *testing.T) {
	c, err := New(WithCommitter(record.NewCommitter(brokenSink{})))
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	rec := do(t, c.Handler(), http.MethodPost, "/commit", completeBody)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHandler_Preview(t *testing.T) {
	c, _ := newTestComponent(t)
	rec := do(t, c.Handler(), http.MethodPost, "/preview?renderer=text", completeBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if body := rec.Body.String(); !strings.Contains(body, "VISA") || strings.Contains(body, "123") {
		t.Fatalf("unexpected preview:\n%s", body)
	}

	rec = do(t, c.Handler(), http.MethodPost, "/preview?renderer=pdf", completeBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown renderer, got %d", rec.Code)
	}
}

func TestHandler_OptionalRoutesOmitted(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	for _, target := range []string{"/commit", "/preview"} {
		if rec := do(t, c.Handler(), http.MethodPost, target, completeBody); rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", target, rec.Code)
		}
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	c, _ := newTestComponent(t)
	rec := do(t, c.Handler(), http.MethodGet, "/commit", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandler_Guard(t *testing.T) {
	c, _ := newTestComponent(t, WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized}
	}))
	rec := do(t, c.Handler(), http.MethodGet, "/classify?number=4", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHandler_BodyLimit(t *testing.T) {
	c, _ := newTestComponent(t, WithMaxBodyBytes(8))
	rec := do(t, c.Handler(), http.MethodPost, "/normalize", completeBody)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestMetrics_CountRequestsAndCommits(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, _ := newTestComponent(t, WithRegisterer(reg))
	h := c.Handler()

	do(t, h, http.MethodPost, "/commit", completeBody)
	do(t, h, http.MethodPost, "/commit", `{"number":"4"}`)

	if got := testutil.ToFloat64(c.metrics.commits.WithLabelValues("stored")); got != 1 {
		t.Fatalf("stored commits = %v", got)
	}
	if got := testutil.ToFloat64(c.metrics.commits.WithLabelValues("incomplete")); got != 1 {
		t.Fatalf("incomplete commits = %v", got)
	}
	if got := testutil.ToFloat64(c.metrics.requests.WithLabelValues("commit", "409")); got != 1 {
		t.Fatalf("409 requests = %v", got)
	}

	// A second component on the same registry reuses the collectors.
	if _, err := New(WithRegisterer(reg)); err != nil {
		t.Fatalf("second component: %v", err)
	}
	// Metrics go to the caller's registry, so the component does not serve them.
	if rec := do(t, h, http.MethodGet, "/metrics", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for /metrics, got %d", rec.Code)
	}
}

func TestMetrics_PrivateRegistryServed(t *testing.T) {
	c, _ := newTestComponent(t)
	do(t, c.Handler(), http.MethodGet, "/classify?number=4", "")
	rec := do(t, c.Handler(), http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `cardform_classifications_total{network="visa"} 1`) {
		t.Fatalf("expected classification counter in:\n%s", rec.Body)
	}
}
