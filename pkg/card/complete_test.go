package card_test

import (
	"testing"

	"github.com/goliatone/go-cardform/pkg/card"
)

func completeValues() card.Values {
	return card.Values{
		Number: "4111 1111 1111 1111",
		Holder: "A",
		Expiry: "12/29",
		CVV:    "123",
	}
}

func TestComplete_AllFieldsPresent(t *testing.T) {
	if !card.Complete(completeValues()) {
		t.Fatalf("expected complete form to open the gate")
	}
}

func TestComplete_AnyFieldMissingClosesGate(t *testing.T) {
	cases := map[string]card.Values{
		"number short": completeValues().With(card.FieldNumber, "4111 1111 1111 111"),
		"holder empty": completeValues().With(card.FieldHolder, ""),
		"holder blank": completeValues().With(card.FieldHolder, "   "),
		"expiry open":  completeValues().With(card.FieldExpiry, "12/2"),
		"expiry bare":  completeValues().With(card.FieldExpiry, "12"),
		"cvv short":    completeValues().With(card.FieldCVV, "12"),
	}
	for name, values := range cases {
		if card.Complete(values) {
			t.Fatalf("%s: expected gate closed for %+v", name, values)
		}
	}
}

func TestComplete_BoundaryLengths(t *testing.T) {
	values := completeValues().With(card.FieldNumber, "1234 5678 9012 3456 789").With(card.FieldCVV, "1234")
	if !card.Complete(values) {
		t.Fatalf("19 digit number and 4 digit cvv should be complete")
	}
}

func TestNormalizeValues(t *testing.T) {
	got := card.NormalizeValues(card.Values{
		Number: "4111111111111111",
		Holder: " a ",
		Expiry: "1229",
		CVV:    "12a3",
	})
	if got != completeValues() {
		t.Fatalf("unexpected values %+v", got)
	}
}

func TestParseField(t *testing.T) {
	field, err := card.ParseField(" CVV ")
	if err != nil || field != card.FieldCVV {
		t.Fatalf("ParseField = %q, %v", field, err)
	}
	if _, err := card.ParseField("pin"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}
