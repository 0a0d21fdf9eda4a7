package card_test

import (
	"testing"

	"github.com/goliatone/go-cardform/pkg/card"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		digits string
		want   card.Network
	}{
		{"", card.NetworkNone},
		{"4", card.NetworkVisa},
		{"4111111111111111", card.NetworkVisa},
		{"5", card.NetworkUnknown},
		{"50", card.NetworkUnknown},
		{"51", card.NetworkMastercard},
		{"55", card.NetworkMastercard},
		{"56", card.NetworkUnknown},
		{"5105105105105100", card.NetworkMastercard},
		{"222", card.NetworkUnknown},
		{"2220", card.NetworkUnknown},
		{"2221", card.NetworkMastercard},
		{"2223000048400011", card.NetworkMastercard},
		{"2720", card.NetworkMastercard},
		{"2721", card.NetworkUnknown},
		{"6011000000000004", card.NetworkUnknown},
	}
	for _, tc := range cases {
		if got := card.Classify(tc.digits); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.digits, got, tc.want)
		}
	}
}

func TestClassifyNumber_IgnoresGrouping(t *testing.T) {
	if got := card.ClassifyNumber("2221 0000 0000 0000"); got != card.NetworkMastercard {
		t.Fatalf("expected mastercard, got %s", got)
	}
	if got := card.ClassifyNumber(""); got != card.NetworkNone {
		t.Fatalf("expected none, got %s", got)
	}
}

func TestNetworkKnown(t *testing.T) {
	if !card.NetworkVisa.Known() || !card.NetworkMastercard.Known() {
		t.Fatalf("visa and mastercard should be known")
	}
	if card.NetworkNone.Known() || card.NetworkUnknown.Known() {
		t.Fatalf("none and unknown should not be known")
	}
}
