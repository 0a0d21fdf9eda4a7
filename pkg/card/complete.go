package card

import "strings"

const (
	minCompleteNumberDigits = 16
	completeExpiryLength    = 5
	minCompleteCVVDigits    = 3
)

// Complete reports whether the canonical values are sufficient to commit: at
// least 16 number digits, a non-blank holder, a fully slashed expiry and a CVV
// of three or more digits. There is no partial state; the result is the gate.
func Complete(v Values) bool {
	return len(NumberDigits(v.Number)) >= minCompleteNumberDigits &&
		strings.TrimSpace(v.Holder) != "" &&
		len(v.Expiry) == completeExpiryLength &&
		len(v.CVV) >= minCompleteCVVDigits
}
