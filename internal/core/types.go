// Package core turns race result files into sortable tables.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"context"
	"encoding/json"
	"math"
)

// Source supplies the race index and the raw result files.
// Implementations are read-only and must honor ctx cancellation.
type Source interface {
	// ListDates returns the raw index entries. Entries are validated by the
	// caller, so a source may return whatever its index holds.
	ListDates(ctx context.Context) ([]string, error)

	// FetchCSV returns the result file for date byte for byte.
	// A missing file is reported with an error wrapping ErrNotFound.
	FetchCSV(ctx context.Context, date RaceDate) ([]byte, error)
}

// Record is one row of a race result.
// Values are kept exactly as exported except DriverName, which is
// normalized to display case.
type Record struct {
	Position   string
	CarNumber  string
	DriverName string
	Laps       string
	Diff       string
	Gap        string
	BestLap    string
	TotalTime  string
	Sector1    string
	Sector2    string
	Sector3    string

	// Extra holds columns the header table does not know, keyed by the
	// trimmed header label.
	Extra map[string]string
}

// Key is the sortable value behind a cell.
type Key struct {
	Num     float64
	Text    string
	Numeric bool
}

// NumKey builds a numeric key.
func NumKey(f float64) Key { return Key{Num: f, Numeric: true} }

// TextKey builds a text key.
func TextKey(s string) Key { return Key{Text: s} }

// Finite reports whether the key is numeric and holds a finite value.
func (k Key) Finite() bool {
	return k.Numeric && !math.IsNaN(k.Num) && !math.IsInf(k.Num, 0)
}

// MarshalJSON writes numeric keys as numbers, with NaN and infinities as
// null, and text keys as strings.
func (k Key) MarshalJSON() ([]byte, error) {
	if !k.Numeric {
		return json.Marshal(k.Text)
	}
	if !k.Finite() {
		return []byte("null"), nil
	}
	return json.Marshal(k.Num)
}

// View is everything a page needs to render one race.
type View struct {
	Date    RaceDate
	LoadID  string
	Columns []Column
	Records []Record  // file order, never mutated
	Sort    SortState // default sort for the view
}

// Sorted returns the records ordered by state. A nil state uses the view's
// default sort.
func (v *View) Sorted(state SortState) []Record {
	if state == nil {
		state = v.Sort
	}
	return Sort(v.Records, v.Columns, state)
}
