// Package identity holds the caller-supplied identity value types and their
// validation rules: the 9-digit national identity number with its weighted
// mod-11 checksum, and the birth date in full or year-only form.
package identity

import (
	dErrors "fotogate/pkg/domain-errors"
)

// checksumWeights are the positional weights of the 11-proef: digits d0..d7
// weigh 9 down to 2, the final check digit weighs -1.
var checksumWeights = [9]int{9, 8, 7, 6, 5, 4, 3, 2, -1}

// Number is a validated 9-digit national identity number. Construct only via
// ParseNumber; the zero value is not a valid number.
type Number struct {
	digits string
}

// ParseNumber validates s as a national identity number: exactly 9 ASCII
// digits whose weighted sum is divisible by 11.
//
// The check is deliberately as permissive as the register it mirrors: a
// weighted sum of zero passes, so the all-zero number validates. The rejected
// candidate rides on the error for programmatic inspection (dErrors.ValueOf)
// but never appears in the message; callers log Masked() instead.
func ParseNumber(s string) (Number, error) {
	if len(s) != 9 {
		return Number{}, dErrors.NewWithValue(dErrors.CodeInvalidInput, "identity number must be exactly 9 digits", s)
	}

	sum := 0
	for i := 0; i < 9; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Number{}, dErrors.NewWithValue(dErrors.CodeInvalidInput, "identity number must be exactly 9 digits", s)
		}
		sum += int(c-'0') * checksumWeights[i]
	}

	// Floored modulo: the sum can go negative through the -1 weight and the
	// result must still land in [0, 11).
	if ((sum%11)+11)%11 != 0 {
		return Number{}, dErrors.NewWithValue(dErrors.CodeInvalidInput, "identity number failed checksum", s)
	}

	return Number{digits: s}, nil
}

// String returns the full 9-digit number. Do not log this; use Masked.
func (n Number) String() string {
	return n.digits
}

// Masked returns the number with the middle digits hidden (e.g. 123***82),
// the only form that may appear in logs.
func (n Number) Masked() string {
	if len(n.digits) != 9 {
		return ""
	}
	return n.digits[:3] + "***" + n.digits[7:]
}

// IsZero reports whether n was never parsed.
func (n Number) IsZero() bool {
	return n.digits == ""
}
