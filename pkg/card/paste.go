package card

// SanitizePastedNumber cleans clipboard text destined for the number field.
// It shares the typed-input rules so both entry points always agree.
func SanitizePastedNumber(text string) string {
	return NormalizeNumber(text)
}

// SanitizePastedExpiry cleans clipboard text destined for the expiry field.
func SanitizePastedExpiry(text string) string {
	return NormalizeExpiry(text)
}

// SanitizePaste returns the sanitized value for fields that intercept paste
// events. ok is false for fields that accept the default paste behaviour.
func SanitizePaste(field Field, text string) (value string, ok bool) {
	switch field {
	case FieldNumber:
		return SanitizePastedNumber(text), true
	case FieldExpiry:
		return SanitizePastedExpiry(text), true
	default:
		return "", false
	}
}
