package cardform

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openAPISource []byte

// Document loads and validates the embedded OpenAPI description.
func Document(ctx context.Context) (*openapi3.T, error) {
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	doc, err := loader.LoadFromData(openAPISource)
	if err != nil {
		return nil, fmt.Errorf("cardform: load openapi: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("cardform: validate openapi: %w", err)
	}
	return doc, nil
}

// schemaValidator checks decoded JSON bodies against named component
// schemas.
type schemaValidator struct {
	schemas openapi3.Schemas
}

func newSchemaValidator(doc *openapi3.T) (*schemaValidator, error) {
	if doc == nil || doc.Components == nil {
		return nil, fmt.Errorf("cardform: openapi document has no components")
	}
	for _, name := range []string{"CardInput", "PasteInput"} {
		if ref := doc.Components.Schemas[name]; ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("cardform: openapi schema %q missing", name)
		}
	}
	return &schemaValidator{schemas: doc.Components.Schemas}, nil
}

// decode validates raw against schema and then unmarshals it into target.
func (v *schemaValidator) decode(schema string, raw []byte, target any) error {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := v.schemas[schema].Value.VisitJSON(generic, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("invalid %s: %s", schema, describeSchemaError(err))
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("invalid %s: %w", schema, err)
	}
	return nil
}

// describeSchemaError reduces kin-openapi errors to "path: reason" pairs.
// The full error embeds the submitted value, which may hold card data.
func describeSchemaError(err error) string {
	var leaves []error
	var collect func(error)
	collect = func(err error) {
		if multi, ok := err.(openapi3.MultiError); ok {
			for _, inner := range multi {
				collect(inner)
			}
			return
		}
		leaves = append(leaves, err)
	}
	collect(err)

	messages := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		var schemaErr *openapi3.SchemaError
		if !errors.As(leaf, &schemaErr) {
			messages = append(messages, "request does not match schema")
			continue
		}
		path := strings.Join(schemaErr.JSONPointer(), ".")
		if path == "" {
			path = "body"
		}
		messages = append(messages, path+": "+schemaErr.Reason)
	}
	sort.Strings(messages)
	return strings.Join(messages, "; ")
}
