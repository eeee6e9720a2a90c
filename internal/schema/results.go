// Package schema describes the CSV layout produced by the timing software.
//
// The header labels are the Portuguese captions found in the exported files.
// Each label translates to a canonical Field used by the record parser and the
// column model; labels that are not listed here are carried through as extra
// columns.
package schema

import "strings"

// Field is the canonical name of a result column.
type Field string

const (
	FieldPosition  Field = "pos"
	FieldNumber    Field = "number"
	FieldName      Field = "name"
	FieldLaps      Field = "laps"
	FieldDiff      Field = "diff"
	FieldGap       Field = "gap"
	FieldBestTime  Field = "bestTime"
	FieldTotalTime Field = "totalTime"
	FieldSector1   Field = "sector1"
	FieldSector2   Field = "sector2"
	FieldSector3   Field = "sector3"
)

// FieldType is the kind of value a column holds in the source file.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInteger
	FieldDelta    // "+1.234" style delta, or "N laps"
	FieldDuration // SS.mmm, MM:SS.mmm or HH:MM:SS.mmm
	FieldDecimal  // decimal seconds
)

// FieldSpec binds a source header label to a canonical field.
type FieldSpec struct {
	Header string // Header label exactly as exported (after trimming)
	Field  Field
	Type   FieldType
}

// ResultFieldSpecs lists the columns of a race result export in file order.
var ResultFieldSpecs = []FieldSpec{
	{Header: "Pos", Field: FieldPosition, Type: FieldInteger},
	{Header: "No.", Field: FieldNumber, Type: FieldText},
	{Header: "Nome", Field: FieldName, Type: FieldText},
	{Header: "Voltas", Field: FieldLaps, Type: FieldInteger},
	{Header: "Diff", Field: FieldDiff, Type: FieldDelta},
	{Header: "Gap", Field: FieldGap, Type: FieldDelta},
	{Header: "Melhor Tempo", Field: FieldBestTime, Type: FieldDuration},
	{Header: "Total Tempo", Field: FieldTotalTime, Type: FieldDuration},
	{Header: "S1", Field: FieldSector1, Type: FieldDecimal},
	{Header: "S2", Field: FieldSector2, Type: FieldDecimal},
	{Header: "S3", Field: FieldSector3, Type: FieldDecimal},
}

var headerFields = func() map[string]Field {
	m := make(map[string]Field, len(ResultFieldSpecs))
	for _, spec := range ResultFieldSpecs {
		m[spec.Header] = spec.Field
	}
	return m
}()

// Lookup translates a raw header cell to its canonical field.
// The cell is trimmed before matching; matching is case-sensitive.
func Lookup(header string) (Field, bool) {
	f, ok := headerFields[strings.TrimSpace(header)]
	return f, ok
}

// Fields returns the canonical fields in file order.
func Fields() []Field {
	out := make([]Field, len(ResultFieldSpecs))
	for i, spec := range ResultFieldSpecs {
		out[i] = spec.Field
	}
	return out
}

// Headers returns the source header labels in file order.
func Headers() []string {
	out := make([]string, len(ResultFieldSpecs))
	for i, spec := range ResultFieldSpecs {
		out[i] = spec.Header
	}
	return out
}
