package core

// numeric.go reads the loosely formatted numbers found in timing exports.
//
// Cells are parsed the way a browser table would: the longest numeric prefix
// is used and trailing text is ignored ("20.111s" is 20.111). Cells without a
// numeric prefix yield NaN, which renders as a placeholder and sorts last.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalPrefix matches the numeric prefix of a cell after leading whitespace.
var decimalPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// intPrefix matches an optionally signed run of digits.
var intPrefix = regexp.MustCompile(`^[+-]?\d+`)

// ParseDecimal reads the leading decimal number in s, or NaN.
func ParseDecimal(s string) float64 {
	m := decimalPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ParseLeadingInt reads the leading integer in s.
func ParseLeadingInt(s string) (int64, bool) {
	m := intPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// finite reports whether f is neither NaN nor infinite.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// compareFloat orders finite values ascending and puts NaN and infinities
// after every finite value. Two non-finite values compare equal.
func compareFloat(a, b float64) int {
	fa, fb := finite(a), finite(b)
	switch {
	case !fa && !fb:
		return 0
	case !fa:
		return 1
	case !fb:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// formatDecimal prints f with three decimals, or the placeholder.
func formatDecimal(f float64) string {
	if !finite(f) {
		return placeholder
	}
	return strconv.FormatFloat(f, 'f', 3, 64)
}
