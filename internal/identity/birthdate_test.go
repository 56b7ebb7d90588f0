package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "fotogate/pkg/domain-errors"
)

var testNow = time.Date(2026, time.August, 30, 15, 4, 5, 0, time.UTC)

func TestParseBirthDateAt_FullDates(t *testing.T) {
	t.Run("accepts valid dates", func(t *testing.T) {
		for _, s := range []string{"2000-08-16", "1985-12-25", "1990-05-10", "2000-02-29"} {
			d, err := ParseBirthDateAt(s, testNow)
			require.NoError(t, err, s)
			assert.False(t, d.YearOnly())
			assert.Equal(t, s, d.String())
		}
	})

	t.Run("accepts today", func(t *testing.T) {
		// Same-day is permitted even when the clock reads later in the day.
		_, err := ParseBirthDateAt("2026-08-30", testNow)
		assert.NoError(t, err)
	})

	t.Run("rejects tomorrow", func(t *testing.T) {
		_, err := ParseBirthDateAt("2026-08-31", testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects impossible calendar dates", func(t *testing.T) {
		for _, s := range []string{"2000-13-45", "2023-02-30", "2023-02-29", "2021-04-31"} {
			_, err := ParseBirthDateAt(s, testNow)
			require.Error(t, err, s)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("rejects shape failures before semantics", func(t *testing.T) {
		for _, s := range []string{"", "2000-8-16", "16-08-2000", "2000/08/16", "2000-08-16T00:00:00", "20000816", "abcd-ef-gh"} {
			_, err := ParseBirthDateAt(s, testNow)
			require.Error(t, err, s)
		}
	})
}

func TestParseBirthDateAt_YearOnly(t *testing.T) {
	t.Run("accepts year in range", func(t *testing.T) {
		d, err := ParseBirthDateAt("1985-00-00", testNow)
		require.NoError(t, err)
		assert.True(t, d.YearOnly())
		assert.Equal(t, 1985, d.Year())
		assert.Equal(t, "1985-00-00", d.String())
	})

	t.Run("accepts range boundaries", func(t *testing.T) {
		for _, s := range []string{"1900-00-00", "2026-00-00"} {
			_, err := ParseBirthDateAt(s, testNow)
			assert.NoError(t, err, s)
		}
	})

	t.Run("rejects years out of range", func(t *testing.T) {
		for _, s := range []string{"1800-00-00", "1899-00-00", "2027-00-00"} {
			_, err := ParseBirthDateAt(s, testNow)
			require.Error(t, err, s)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}

func TestParseBirthDateErrorCarriesValue(t *testing.T) {
	_, err := ParseBirthDateAt("2030-01-01", testNow)
	require.Error(t, err)

	assert.Equal(t, "2030-01-01", dErrors.ValueOf(err))
	assert.NotContains(t, err.Error(), "2030-01-01")
}

func TestParseBirthDate_UsesWallClock(t *testing.T) {
	// Anything well in the past must pass against the real clock too.
	_, err := ParseBirthDate("2000-08-16")
	assert.NoError(t, err)
}
