package core

import "strings"

// LapMarkers are the lowercase fragments that mark a gap counted in laps
// ("1 lap", "2 laps", "1 volta") rather than a time delta.
var LapMarkers = []string{"lap", "volta"}

// HasLapMarker reports whether s is a lap-count gap. Matching ignores case.
func HasLapMarker(s string) bool {
	lower := strings.ToLower(s)
	for _, m := range LapMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Ranks for CompareLapAware, in sort order.
const (
	lapRankBlank = iota // leader row, no gap
	lapRankTime         // numeric time delta
	lapRankText         // neither a number nor a lap count
	lapRankLaps         // N lap(s) behind
)

// CompareLapAware orders gap and diff values, ignoring case.
//
// Two lap counts compare by their leading integer. A lap count always sorts
// after a time delta. Two time deltas compare as decimals. Blank values come
// first and unreadable text sorts between the deltas and the lap counts, so
// the order is total.
func CompareLapAware(a, b string) int {
	ra, rb := lapRank(a), lapRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case lapRankLaps:
		na, oka := ParseLeadingInt(a)
		nb, okb := ParseLeadingInt(b)
		switch {
		case oka && okb:
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
		case oka:
			return -1
		case okb:
			return 1
		}
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	case lapRankTime:
		return compareFloat(ParseDecimal(a), ParseDecimal(b))
	case lapRankText:
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	}
	return 0
}

func lapRank(s string) int {
	switch {
	case strings.TrimSpace(s) == "":
		return lapRankBlank
	case HasLapMarker(s):
		return lapRankLaps
	case finite(ParseDecimal(s)):
		return lapRankTime
	}
	return lapRankText
}
