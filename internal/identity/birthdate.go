package identity

import (
	"fmt"
	"regexp"
	"time"

	dErrors "fotogate/pkg/domain-errors"
)

const minBirthYear = 1900

// Shape gates run before any semantic check; anything else is a format error.
var (
	yearOnlyShape = regexp.MustCompile(`^\d{4}-00-00$`)
	fullDateShape = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
)

// BirthDate is a validated birth date: either a full calendar date or a
// year-known-only marker (YYYY-00-00). Construct only via ParseBirthDate.
type BirthDate struct {
	year     int
	month    time.Month
	day      int
	yearOnly bool
}

// ParseBirthDate validates s against the clock's current time.
func ParseBirthDate(s string) (BirthDate, error) {
	return ParseBirthDateAt(s, time.Now())
}

// ParseBirthDateAt validates s as of the given moment.
//
// Accepted shapes are YYYY-MM-DD and YYYY-00-00. Year-only dates must fall in
// [1900, current year]. Full dates must be calendar-valid (proleptic Gregorian
// leap rules) and not after the current date; the current day itself passes.
func ParseBirthDateAt(s string, now time.Time) (BirthDate, error) {
	if yearOnlyShape.MatchString(s) {
		year := atoi4(s)
		if year < minBirthYear || year > now.Year() {
			return BirthDate{}, dErrors.NewWithValue(dErrors.CodeInvalidInput,
				fmt.Sprintf("birth year must be between %d and %d", minBirthYear, now.Year()), s)
		}
		return BirthDate{year: year, yearOnly: true}, nil
	}

	if !fullDateShape.MatchString(s) {
		return BirthDate{}, dErrors.NewWithValue(dErrors.CodeInvalidInput,
			"birth date must be in format YYYY-MM-DD or YYYY-00-00", s)
	}

	// The shape gate admits day numbers that don't exist in the given month
	// (e.g. 2023-02-30); time.Parse catches those.
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return BirthDate{}, dErrors.NewWithValue(dErrors.CodeInvalidInput, "birth date is not a valid calendar date", s)
	}

	if afterToday(t, now) {
		return BirthDate{}, dErrors.NewWithValue(dErrors.CodeInvalidInput, "birth date cannot be in the future", s)
	}

	return BirthDate{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// afterToday compares calendar dates only, so a birth date of today passes
// regardless of the time of day.
func afterToday(t, now time.Time) bool {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty != ny {
		return ty > ny
	}
	if tm != nm {
		return tm > nm
	}
	return td > nd
}

// atoi4 parses the leading 4-digit year of an already shape-checked string.
func atoi4(s string) int {
	year := 0
	for i := 0; i < 4; i++ {
		year = year*10 + int(s[i]-'0')
	}
	return year
}

// YearOnly reports whether only the birth year is known.
func (d BirthDate) YearOnly() bool {
	return d.yearOnly
}

// Year returns the birth year.
func (d BirthDate) Year() int {
	return d.year
}

// String returns the canonical textual form, the same shape that was parsed.
func (d BirthDate) String() string {
	if d.yearOnly {
		return fmt.Sprintf("%04d-00-00", d.year)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// IsZero reports whether d was never parsed.
func (d BirthDate) IsZero() bool {
	return d.year == 0
}
