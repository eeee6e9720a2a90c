package core

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// RaceDateLayout is the time layout of a RaceDate.
const RaceDateLayout = "20060102"

// RaceDate identifies one race session as YYYYMMDD.
type RaceDate string

// ParseRaceDate validates s as eight digits forming a real calendar date.
// Surrounding whitespace is ignored.
func ParseRaceDate(s string) (RaceDate, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(RaceDateLayout) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
	}
	if _, err := time.Parse(RaceDateLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return RaceDate(s), nil
}

// String returns the YYYYMMDD form.
func (d RaceDate) String() string { return string(d) }

// Time returns midnight UTC of the race day. Invalid dates return the zero
// time.
func (d RaceDate) Time() time.Time {
	t, err := time.Parse(RaceDateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Parts returns year, month and day of a valid date.
func (d RaceDate) Parts() (year int, month time.Month, day int) {
	return d.Time().Date()
}

// SortDatesDesc sorts dates newest first. YYYYMMDD sorts correctly as text.
func SortDatesDesc(dates []RaceDate) {
	slices.SortFunc(dates, func(a, b RaceDate) int {
		return strings.Compare(string(b), string(a))
	})
}
