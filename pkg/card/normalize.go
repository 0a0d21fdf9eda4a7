package card

import "strings"

const (
	// MaxNumberDigits caps the digits retained for a card number.
	MaxNumberDigits = 19
	// MaxExpiryDigits caps the digits retained for an expiry.
	MaxExpiryDigits = 4
	// MaxCVVDigits caps the digits retained for a CVV.
	MaxCVVDigits = 4

	numberGroupSize = 4
	expirySlashAt   = 2
)

// Digits returns the decimal digits (0-9) of raw in order, keeping at most
// limit of them. A limit <= 0 keeps every digit.
func Digits(raw string, limit int) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	count := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c < '0' || c > '9' {
			continue
		}
		b.WriteByte(c)
		count++
		if limit > 0 && count == limit {
			break
		}
	}
	return b.String()
}

// NumberDigits strips the grouping spaces from a number value. It is the
// digit string the classifier and the completeness evaluator operate on.
func NumberDigits(number string) string {
	return strings.Join(strings.Fields(number), "")
}

// NormalizeNumber keeps the first 19 digits of raw and groups them into blocks
// of four separated by a single space, with no trailing space.
func NormalizeNumber(raw string) string {
	digits := Digits(raw, MaxNumberDigits)
	if len(digits) <= numberGroupSize {
		return digits
	}
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/numberGroupSize)
	for i := 0; i < len(digits); i += numberGroupSize {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + numberGroupSize
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[i:end])
	}
	return b.String()
}

// NormalizeHolder trims surrounding whitespace and upper-cases the name. An
// empty result is a valid, incomplete holder.
func NormalizeHolder(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// NormalizeExpiry keeps the first four digits of raw and inserts a slash after
// the second digit once a third digit exists. Month and year ranges are not
// checked; "13/99" is accepted literally.
func NormalizeExpiry(raw string) string {
	digits := Digits(raw, MaxExpiryDigits)
	if len(digits) <= expirySlashAt {
		return digits
	}
	return digits[:expirySlashAt] + "/" + digits[expirySlashAt:]
}

// NormalizeCVV keeps the first four digits of raw.
func NormalizeCVV(raw string) string {
	return Digits(raw, MaxCVVDigits)
}
