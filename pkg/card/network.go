package card

import "strconv"

// Network is the card network inferred from the number prefix.
type Network string

const (
	// NetworkNone is reported for an empty number.
	NetworkNone Network = "none"
	// NetworkVisa covers numbers starting with 4.
	NetworkVisa Network = "visa"
	// NetworkMastercard covers the 51-55 and 2221-2720 ranges.
	NetworkMastercard Network = "mastercard"
	// NetworkUnknown is reported for any other non-empty number.
	NetworkUnknown Network = "unknown"
)

const (
	mastercardSeriesTwoLow  = 2221
	mastercardSeriesTwoHigh = 2720
)

// String implements fmt.Stringer.
func (n Network) String() string {
	return string(n)
}

// Known reports whether n names a concrete network.
func (n Network) Known() bool {
	return n == NetworkVisa || n == NetworkMastercard
}

// Classify infers the network from a digit-only number string. Rules are
// evaluated in order and the first match wins.
func Classify(digits string) Network {
	if digits == "" {
		return NetworkNone
	}
	if digits[0] == '4' {
		return NetworkVisa
	}
	if len(digits) >= 2 && digits[0] == '5' && digits[1] >= '1' && digits[1] <= '5' {
		return NetworkMastercard
	}
	if len(digits) >= 4 {
		if prefix, err := strconv.Atoi(digits[:4]); err == nil &&
			prefix >= mastercardSeriesTwoLow && prefix <= mastercardSeriesTwoHigh {
			return NetworkMastercard
		}
	}
	return NetworkUnknown
}

// ClassifyNumber classifies a canonical (space grouped) number.
func ClassifyNumber(number string) Network {
	return Classify(NumberDigits(number))
}
