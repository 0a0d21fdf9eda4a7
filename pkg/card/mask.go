package card

import "strings"

// MaskChar replaces every hidden CVV digit in its displayed projection.
const MaskChar = "*"

// ProjectCVV returns the displayed form of a canonical CVV: the digits when
// visible, otherwise an equal-length run of MaskChar. The canonical value is
// never altered by visibility.
func ProjectCVV(cvv string, visible bool) string {
	if visible {
		return cvv
	}
	return strings.Repeat(MaskChar, len(cvv))
}

// MaskNumber hides every digit of a canonical number except the last four,
// keeping the group spacing.
func MaskNumber(number string) string {
	digits := 0
	for i := 0; i < len(number); i++ {
		if number[i] >= '0' && number[i] <= '9' {
			digits++
		}
	}
	keep := 4
	if digits <= keep {
		return number
	}
	out := []byte(number)
	hide := digits - keep
	for i := range out {
		if hide == 0 {
			break
		}
		if out[i] >= '0' && out[i] <= '9' {
			out[i] = MaskChar[0]
			hide--
		}
	}
	return string(out)
}
