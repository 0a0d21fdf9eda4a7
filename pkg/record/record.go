package record

import (
	"time"

	"github.com/goliatone/go-cardform/pkg/card"
)

// Record is an immutable snapshot of a committed card form.
type Record struct {
	ID        string    `json:"id" yaml:"id"`
	Number    string    `json:"number" yaml:"number"`
	Holder    string    `json:"holder" yaml:"holder"`
	Expiry    string    `json:"expiry" yaml:"expiry"`
	CVV       string    `json:"cvv" yaml:"cvv"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// New builds a record from canonical values.
func New(id string, values card.Values, at time.Time) Record {
	return Record{
		ID:        id,
		Number:    values.Number,
		Holder:    values.Holder,
		Expiry:    values.Expiry,
		CVV:       values.CVV,
		Timestamp: at,
	}
}

// Values returns the canonical field values carried by the record.
func (r Record) Values() card.Values {
	return card.Values{
		Number: r.Number,
		Holder: r.Holder,
		Expiry: r.Expiry,
		CVV:    r.CVV,
	}
}

// Network classifies the stored number.
func (r Record) Network() card.Network {
	return card.ClassifyNumber(r.Number)
}

// Redacted returns a copy safe to display or log: the number keeps only its
// last four digits and the CVV is fully masked.
func (r Record) Redacted() Record {
	r.Number = card.MaskNumber(r.Number)
	r.CVV = card.ProjectCVV(r.CVV, false)
	return r
}
