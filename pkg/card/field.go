package card

import (
	"fmt"
	"strings"
)

// Field identifies one of the four card form inputs.
type Field string

const (
	FieldNumber Field = "number"
	FieldHolder Field = "holder"
	FieldExpiry Field = "expiry"
	FieldCVV    Field = "cvv"
)

// Fields lists the inputs in form order.
var Fields = []Field{FieldNumber, FieldHolder, FieldExpiry, FieldCVV}

// ParseField resolves a field name case-insensitively.
func ParseField(name string) (Field, error) {
	field := Field(strings.ToLower(strings.TrimSpace(name)))
	switch field {
	case FieldNumber, FieldHolder, FieldExpiry, FieldCVV:
		return field, nil
	}
	return "", fmt.Errorf("card: unknown field %q", name)
}

// Normalize applies the normalizer registered for field. Unknown fields return
// raw untouched.
func Normalize(field Field, raw string) string {
	switch field {
	case FieldNumber:
		return NormalizeNumber(raw)
	case FieldHolder:
		return NormalizeHolder(raw)
	case FieldExpiry:
		return NormalizeExpiry(raw)
	case FieldCVV:
		return NormalizeCVV(raw)
	default:
		return raw
	}
}

// Values holds the canonical value of every field.
type Values struct {
	Number string `json:"number"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// NormalizeValues runs every raw value through its normalizer.
func NormalizeValues(raw Values) Values {
	return Values{
		Number: NormalizeNumber(raw.Number),
		Holder: NormalizeHolder(raw.Holder),
		Expiry: NormalizeExpiry(raw.Expiry),
		CVV:    NormalizeCVV(raw.CVV),
	}
}

// Get returns the value stored for field.
func (v Values) Get(field Field) string {
	switch field {
	case FieldNumber:
		return v.Number
	case FieldHolder:
		return v.Holder
	case FieldExpiry:
		return v.Expiry
	case FieldCVV:
		return v.CVV
	default:
		return ""
	}
}

// With returns a copy of v with field set to value. Unknown fields leave v
// unchanged.
func (v Values) With(field Field, value string) Values {
	switch field {
	case FieldNumber:
		v.Number = value
	case FieldHolder:
		v.Holder = value
	case FieldExpiry:
		v.Expiry = value
	case FieldCVV:
		v.CVV = value
	}
	return v
}
