// Package display projects canonical card values onto the strings shown on
// the card preview: placeholders for empty fields, the masked or plain CVV,
// and the presentation (label, theme, logo) of the detected network.
package display

import (
	"github.com/goliatone/go-cardform/pkg/card"
	theme "github.com/goliatone/go-theme"
)

// Placeholders shown while a field is empty.
const (
	PlaceholderNumber = "#### #### #### ####"
	PlaceholderHolder = "CARD HOLDER"
	PlaceholderExpiry = "MM/YY"
	PlaceholderCVV    = "***"
)

// Presentation describes how a network is announced on the preview.
type Presentation struct {
	Label      string  `json:"label"`
	Opacity    float64 `json:"opacity"`
	ThemeClass string  `json:"themeClass"`
	Logo       string  `json:"logo"`
}

var presentations = map[card.Network]Presentation{
	card.NetworkVisa:       {Label: "VISA", Opacity: 1, ThemeClass: "theme-visa", Logo: "visa"},
	card.NetworkMastercard: {Label: "MASTERCARD", Opacity: 1, ThemeClass: "theme-master", Logo: "master"},
	card.NetworkNone:       {Label: "—", Opacity: 0.7, ThemeClass: "theme-default", Logo: "default"},
	card.NetworkUnknown:    {Label: "UNKNOWN", Opacity: 0.85, ThemeClass: "theme-default", Logo: "default"},
}

// PresentationFor returns the presentation of network; unrecognised values
// are presented as unknown.
func PresentationFor(network card.Network) Presentation {
	if p, ok := presentations[network]; ok {
		return p
	}
	return presentations[card.NetworkUnknown]
}

// View is everything a preview renderer needs for one frame.
type View struct {
	Number     string                `json:"number"`
	Holder     string                `json:"holder"`
	Expiry     string                `json:"expiry"`
	CVV        string                `json:"cvv"`
	Network    card.Network          `json:"network"`
	CVVVisible bool                  `json:"cvvVisible"`
	Flipped    bool                  `json:"flipped"`
	Complete   bool                  `json:"complete"`
	Present    Presentation          `json:"presentation"`
	Theme      *theme.RendererConfig `json:"-"`
}

// Project builds the view for canonical values. The network is classified
// from values.Number.
func Project(values card.Values, cvvVisible bool) View {
	network := card.ClassifyNumber(values.Number)
	return View{
		Number:     orPlaceholder(values.Number, PlaceholderNumber),
		Holder:     orPlaceholder(values.Holder, PlaceholderHolder),
		Expiry:     orPlaceholder(values.Expiry, PlaceholderExpiry),
		CVV:        orPlaceholder(card.ProjectCVV(values.CVV, cvvVisible), PlaceholderCVV),
		Network:    network,
		CVVVisible: cvvVisible,
		Flipped:    cvvVisible,
		Complete:   card.Complete(values),
		Present:    PresentationFor(network),
		Theme:      DefaultThemes().For(network),
	}
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
