// Package card turns raw, partially typed or pasted text into the canonical
// values mirrored by the card form: a grouped card number, an upper-cased
// holder name, an auto-slashed expiry and a digits-only CVV. It also infers the
// card network from the number prefix and decides when the four values are
// complete enough to commit.
//
// Every function in this package is pure and total. Malformed, empty or
// overlong input degrades by stripping and truncation; nothing here returns an
// error or performs I/O. Normalizers are fixed points on their own output, so
// re-running a canonical value through its normalizer yields the same value.
//
// No checksum (Luhn/mod-10) validation or issuer lookup is performed.
package card
