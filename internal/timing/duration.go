// Package timing converts lap and session times between their printed form
// and whole milliseconds.
//
// Parsing never fails: text that cannot be read as a time produces an
// unparseable Duration whose sort key is +Inf, so one bad cell sorts last
// instead of blocking the rest of the table.
package timing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is printed for values that have no sensible rendering.
const Placeholder = "--"

// Duration is a parsed time in whole milliseconds.
// The zero value is a valid duration of 0ms; use Unparseable for the sentinel.
type Duration struct {
	ms      int64
	invalid bool
}

// Unparseable returns the sentinel produced for unreadable input.
func Unparseable() Duration {
	return Duration{invalid: true}
}

// FromMillis wraps a millisecond count.
func FromMillis(ms int64) Duration {
	return Duration{ms: ms}
}

// Millis returns the millisecond count and whether the value was parsed.
func (d Duration) Millis() (int64, bool) {
	if d.invalid {
		return 0, false
	}
	return d.ms, true
}

// Valid reports whether d holds a parsed value.
func (d Duration) Valid() bool {
	return !d.invalid
}

// SortKey returns the milliseconds as float64, or +Inf for the sentinel.
func (d Duration) SortKey() float64 {
	if d.invalid {
		return math.Inf(1)
	}
	return float64(d.ms)
}

// Seconds returns the value in seconds, or +Inf for the sentinel.
func (d Duration) Seconds() float64 {
	if d.invalid {
		return math.Inf(1)
	}
	return float64(d.ms) / 1000
}

// Compare orders durations ascending with the sentinel last.
func (d Duration) Compare(o Duration) int {
	switch {
	case d.invalid && o.invalid:
		return 0
	case d.invalid:
		return 1
	case o.invalid:
		return -1
	case d.ms < o.ms:
		return -1
	case d.ms > o.ms:
		return 1
	}
	return 0
}

// String renders d with FormatMillis, or Placeholder for the sentinel.
func (d Duration) String() string {
	if d.invalid {
		return Placeholder
	}
	return FormatMillis(d.ms)
}

// ParseDuration reads SS(.mmm), MM:SS(.mmm) or HH:MM:SS(.mmm).
//
// The shape is chosen by the number of ':' separated segments. Each integer
// part is read independently from its leading digits; an empty part counts
// as zero. The fraction is padded with zeros and cut to three digits, so
// "1.5" is 1500ms and "1.23456" is 1234ms (truncated, never rounded).
func ParseDuration(s string) Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unparseable()
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return Unparseable()
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	// Seconds and fraction always live in the last segment.
	secFrac := strings.Split(parts[len(parts)-1], ".")
	sec := secFrac[0]
	frac := "0"
	if len(secFrac) > 1 {
		frac = secFrac[1]
	}

	var hh, mm string
	switch len(parts) {
	case 3:
		hh, mm = parts[0], parts[1]
	case 2:
		mm = parts[0]
	}

	var total int64
	for _, p := range []struct {
		text  string
		scale int64
	}{
		{hh, 3_600_000},
		{mm, 60_000},
		{sec, 1_000},
		{(frac + "000")[:3], 1},
	} {
		n, ok := leadingInt(p.text)
		if !ok {
			return Unparseable()
		}
		total += n * p.scale
	}
	return FromMillis(total)
}

// leadingInt reads an optionally signed integer prefix; empty text is zero.
func leadingInt(s string) (int64, bool) {
	if s == "" {
		return 0, true
	}
	s = strings.TrimLeft(s, " \t")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatSeconds prints a seconds value as [M:]SS.mmm.
//
// The minutes prefix appears only from 60s up. The seconds part always has
// two integer digits and three decimals. The value is rounded to whole
// milliseconds before splitting so 59.9997 prints "1:00.000".
// NaN and infinities print Placeholder.
func FormatSeconds(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Placeholder
	}
	return FormatMillis(int64(math.Round(seconds * 1000)))
}

// FormatMillis prints a millisecond count as [M:]SS.mmm.
func FormatMillis(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	minutes := ms / 60_000
	rem := ms % 60_000
	if minutes > 0 {
		return fmt.Sprintf("%s%d:%02d.%03d", sign, minutes, rem/1000, rem%1000)
	}
	return fmt.Sprintf("%s%02d.%03d", sign, rem/1000, rem%1000)
}
