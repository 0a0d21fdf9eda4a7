package cardform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// Component bundles the card form handler, its configuration, OpenAPI
// document and metrics.
type Component struct {
	opts      Options
	doc       *openapi3.T
	validator *schemaValidator
	metrics   *metrics
	handler   http.Handler
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)

	doc, err := Document(context.Background())
	if err != nil {
		return nil, err
	}
	validator, err := newSchemaValidator(doc)
	if err != nil {
		return nil, err
	}
	m, err := newMetrics(opts.Registerer)
	if err != nil {
		return nil, fmt.Errorf("cardform: register metrics: %w", err)
	}

	c := &Component{
		opts:      opts,
		doc:       doc,
		validator: validator,
		metrics:   m,
	}
	c.handler = c.routes()
	return c, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts
}

// OpenAPI returns the validated API document.
func (c *Component) OpenAPI() *openapi3.T {
	return c.doc
}

// Handler returns the net/http handler serving every route relative to "/".
func (c *Component) Handler() http.Handler {
	return c.handler
}
