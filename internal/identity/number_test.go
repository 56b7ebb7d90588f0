package identity

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "fotogate/pkg/domain-errors"
)

func TestParseNumber(t *testing.T) {
	t.Run("accepts known-valid numbers", func(t *testing.T) {
		for _, s := range []string{"123456782", "987654329", "147258369"} {
			n, err := ParseNumber(s)
			require.NoError(t, err, s)
			assert.Equal(t, s, n.String())
		}
	})

	t.Run("rejects checksum failures", func(t *testing.T) {
		for _, s := range []string{"123456789", "111111111", "987654321"} {
			_, err := ParseNumber(s)
			require.Error(t, err, s)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("rejects format failures", func(t *testing.T) {
		for _, s := range []string{"", "12345678", "1234567890", "12345678a", "12345678 ", "+23456782"} {
			_, err := ParseNumber(s)
			require.Error(t, err, strconv.Quote(s))
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("zero weighted sum passes", func(t *testing.T) {
		// Documented permissiveness: all zeros sums to 0, a multiple of 11.
		_, err := ParseNumber("000000000")
		assert.NoError(t, err)
	})

	t.Run("negative sums use floored modulo", func(t *testing.T) {
		// 000000009 sums to -9; truncated modulo would yield -9 and a naive
		// == 0 check would be right by accident, but floored must give 2.
		_, err := ParseNumber("000000009")
		require.Error(t, err)

		// 000000011: d7=1 (weight 2), d8=1 (weight -1) => sum 1, invalid.
		_, err = ParseNumber("000000011")
		require.Error(t, err)
	})

	t.Run("validity matches the weighted sum for all check digits", func(t *testing.T) {
		// Exactly one check digit in 0..9 can make most prefixes valid.
		prefix := "12345678"
		valid := 0
		for d := 0; d <= 9; d++ {
			s := prefix + strconv.Itoa(d)
			if _, err := ParseNumber(s); err == nil {
				valid++
				assert.Equal(t, "123456782", s)
			}
		}
		assert.Equal(t, 1, valid)
	})
}

func TestParseNumberErrorCarriesValue(t *testing.T) {
	_, err := ParseNumber("123456789")
	require.Error(t, err)

	// The rejected candidate rides on the error for inspection but must
	// never surface in the message that reaches logs or HTTP envelopes.
	assert.Equal(t, "123456789", dErrors.ValueOf(err))
	assert.NotContains(t, err.Error(), "123456789")
}

func TestNumberMasked(t *testing.T) {
	n, err := ParseNumber("123456782")
	require.NoError(t, err)
	assert.Equal(t, "123***82", n.Masked())
	assert.Empty(t, Number{}.Masked())
}
