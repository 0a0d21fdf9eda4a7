package cardform

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/goliatone/go-cardform/pkg/card"
	"github.com/goliatone/go-cardform/pkg/display"
	"github.com/goliatone/go-cardform/pkg/record"
	"github.com/goliatone/go-cardform/pkg/render"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type cardInput struct {
	Number     string `json:"number"`
	Holder     string `json:"holder"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	CVVVisible bool   `json:"cvvVisible"`
}

func (in cardInput) values() card.Values {
	return card.NormalizeValues(card.Values{
		Number: in.Number,
		Holder: in.Holder,
		Expiry: in.Expiry,
		CVV:    in.CVV,
	})
}

type pasteInput struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

type stateResponse struct {
	Values   card.Values  `json:"values"`
	Network  card.Network `json:"network"`
	Complete bool         `json:"complete"`
	View     display.View `json:"view"`
}

type pasteResponse struct {
	Field       card.Field `json:"field"`
	Value       string     `json:"value"`
	Intercepted bool       `json:"intercepted"`
}

type classifyResponse struct {
	Network      card.Network         `json:"network"`
	Presentation display.Presentation `json:"presentation"`
}

type commitResponse struct {
	Committed bool           `json:"committed"`
	Record    *record.Record `json:"record,omitempty"`
	Next      string         `json:"next,omitempty"`
}

type recordsResponse struct {
	Data []record.Record `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Component) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /openapi.json", c.route("openapi", c.handleOpenAPI))
	mux.Handle("GET /classify", c.route("classify", c.handleClassify))
	mux.Handle("POST /normalize", c.route("normalize", c.handleNormalize))
	mux.Handle("POST /paste", c.route("paste", c.handlePaste))
	if c.opts.Renderers != nil {
		mux.Handle("POST /preview", c.route("preview", c.handlePreview))
	}
	if c.opts.Committer != nil {
		mux.Handle("POST /commit", c.route("commit", c.handleCommit))
		mux.Handle("GET /records", c.route("records", c.handleRecords))
	}
	if h := c.metrics.handler(); h != nil {
		mux.Handle("GET /metrics", h)
	}
	return mux
}

// route applies the guard, records the response code and maps handler errors
// to JSON error bodies.
func (c *Component) route(name string, fn func(http.ResponseWriter, *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		defer func() { c.metrics.observe(name, rec.code) }()

		if c.opts.Guard != nil {
			if err := c.opts.Guard(r); err != nil {
				code := http.StatusForbidden
				var httpErr HTTPError
				if errors.As(err, &httpErr) && httpErr != nil && httpErr.StatusCode() > 0 {
					code = httpErr.StatusCode()
				}
				writeJSON(rec, code, errorResponse{Error: http.StatusText(code)})
				return
			}
		}

		if err := fn(rec, r); err != nil {
			code := http.StatusInternalServerError
			var httpErr HTTPError
			if errors.As(err, &httpErr) {
				code = httpErr.StatusCode()
			}
			if code >= http.StatusInternalServerError {
				c.opts.Logger.Error("request failed", "route", name, "code", code, "error", err)
			}
			writeJSON(rec, code, errorResponse{Error: err.Error()})
		}
	})
}

func (c *Component) handleOpenAPI(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, c.doc)
	return nil
}

func (c *Component) handleClassify(w http.ResponseWriter, r *http.Request) error {
	network := card.ClassifyNumber(card.NormalizeNumber(r.URL.Query().Get("number")))
	c.metrics.classifications.WithLabelValues(network.String()).Inc()
	writeJSON(w, http.StatusOK, classifyResponse{
		Network:      network,
		Presentation: display.PresentationFor(network),
	})
	return nil
}

func (c *Component) handleNormalize(w http.ResponseWriter, r *http.Request) error {
	var in cardInput
	if err := c.decode(w, r, "CardInput", &in); err != nil {
		return err
	}
	values := in.values()
	view := display.Project(values, in.CVVVisible)
	c.metrics.classifications.WithLabelValues(view.Network.String()).Inc()
	writeJSON(w, http.StatusOK, stateResponse{
		Values:   values,
		Network:  view.Network,
		Complete: view.Complete,
		View:     view,
	})
	return nil
}

func (c *Component) handlePaste(w http.ResponseWriter, r *http.Request) error {
	var in pasteInput
	if err := c.decode(w, r, "PasteInput", &in); err != nil {
		return err
	}
	field, err := card.ParseField(in.Field)
	if err != nil {
		return StatusError{Code: http.StatusBadRequest, Err: err}
	}
	value, intercepted := card.SanitizePaste(field, in.Text)
	if !intercepted {
		value = card.Normalize(field, in.Text)
	}
	writeJSON(w, http.StatusOK, pasteResponse{Field: field, Value: value, Intercepted: intercepted})
	return nil
}

func (c *Component) handlePreview(w http.ResponseWriter, r *http.Request) error {
	var in cardInput
	if err := c.decode(w, r, "CardInput", &in); err != nil {
		return err
	}
	name := r.URL.Query().Get("renderer")
	if _, err := c.opts.Renderers.Get(name); err != nil {
		return StatusError{Code: http.StatusBadRequest, Err: err}
	}
	out, contentType, err := c.opts.Renderers.Render(r.Context(), name, display.Project(in.values(), in.CVVVisible), render.RenderOptions{})
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
	return nil
}

func (c *Component) handleCommit(w http.ResponseWriter, r *http.Request) error {
	var in cardInput
	if err := c.decode(w, r, "CardInput", &in); err != nil {
		return err
	}
	rec, ok, err := c.opts.Committer.Commit(r.Context(), in.values())
	switch {
	case errors.Is(err, record.ErrSinkUnavailable):
		c.metrics.commits.WithLabelValues("failed").Inc()
		return StatusError{Code: http.StatusServiceUnavailable, Err: err}
	case err != nil:
		c.metrics.commits.WithLabelValues("failed").Inc()
		return err
	case !ok:
		c.metrics.commits.WithLabelValues("incomplete").Inc()
		writeJSON(w, http.StatusConflict, commitResponse{Committed: false})
		return nil
	}

	c.metrics.commits.WithLabelValues("stored").Inc()
	c.opts.Logger.Info("card committed", "id", rec.ID, "network", rec.Network())
	if !c.opts.RevealRecords {
		rec = rec.Redacted()
	}
	writeJSON(w, http.StatusCreated, commitResponse{Committed: true, Record: &rec, Next: c.opts.NextURL})
	return nil
}

func (c *Component) handleRecords(w http.ResponseWriter, r *http.Request) error {
	records, err := c.opts.Committer.List(r.Context())
	if err != nil {
		return StatusError{Code: http.StatusServiceUnavailable, Err: err}
	}
	if records == nil {
		records = []record.Record{}
	}
	if !c.opts.RevealRecords {
		for i := range records {
			records[i] = records[i].Redacted()
		}
	}
	writeJSON(w, http.StatusOK, recordsResponse{Data: records})
	return nil
}

func (c *Component) decode(w http.ResponseWriter, r *http.Request, schema string, target any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, c.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return StatusError{Code: http.StatusRequestEntityTooLarge, Err: err}
		}
		return StatusError{Code: http.StatusBadRequest, Err: err}
	}
	if err := c.validator.decode(schema, body, target); err != nil {
		return StatusError{Code: http.StatusBadRequest, Err: err}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}
