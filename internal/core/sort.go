package core

import (
	"fmt"
	"slices"
	"strings"
)

// Sort directions as they appear in query strings.
const (
	DirAsc  = "asc"
	DirDesc = "desc"

	// SortNone in the sort parameter asks for file order.
	SortNone = "none"
)

// SortSpec sorts by one column.
type SortSpec struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc"`
}

// SortState is an ordered list of sort specs. Only the first entry is
// applied; an empty state keeps file order.
type SortState []SortSpec

// DefaultSort orders a race by finishing position.
func DefaultSort() SortState {
	return SortState{{Column: ColPosition}}
}

// Active returns the applied spec, if any.
func (s SortState) Active() (SortSpec, bool) {
	if len(s) == 0 {
		return SortSpec{}, false
	}
	return s[0], true
}

// Direction returns DirAsc or DirDesc when id is the active column, or "".
func (s SortState) Direction(id string) string {
	spec, ok := s.Active()
	if !ok || spec.Column != id {
		return ""
	}
	if spec.Desc {
		return DirDesc
	}
	return DirAsc
}

// Toggle returns the state after clicking the header of column id:
// unsorted -> ascending -> descending -> unsorted.
func (s SortState) Toggle(id string) SortState {
	switch s.Direction(id) {
	case DirAsc:
		return SortState{{Column: id, Desc: true}}
	case DirDesc:
		return SortState{}
	}
	return SortState{{Column: id}}
}

// ParseSortState reads the sort and dir query parameters.
//
// An empty column selects DefaultSort and SortNone selects file order. Any
// other column must exist in cols. Direction defaults to ascending.
func ParseSortState(column, dir string, cols []Column) (SortState, error) {
	column = strings.TrimSpace(column)
	switch column {
	case "":
		return DefaultSort(), nil
	case SortNone:
		return SortState{}, nil
	}

	if _, ok := ColumnByID(cols, column); !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidSort, column)
	}

	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", DirAsc:
		return SortState{{Column: column}}, nil
	case DirDesc:
		return SortState{{Column: column, Desc: true}}, nil
	}
	return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidSort, dir)
}

// Sort returns a copy of records ordered by the active spec in state.
// The sort is stable, so rows that compare equal keep file order.
// Records are returned in file order when state is empty or names an
// unknown column.
func Sort(records []Record, cols []Column, state SortState) []Record {
	out := slices.Clone(records)

	spec, ok := state.Active()
	if !ok {
		return out
	}
	col, ok := ColumnByID(cols, spec.Column)
	if !ok {
		return out
	}

	slices.SortStableFunc(out, func(a, b Record) int {
		c := col.Compare(a, b)
		if spec.Desc {
			return -c
		}
		return c
	})
	return out
}
