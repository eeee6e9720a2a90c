package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dimchansky/utfbom"

	"github.com/JonMunkholm/utiming/internal/names"
	"github.com/JonMunkholm/utiming/internal/schema"
)

// Parser converts result files to records.
type Parser struct {
	Names names.Policy
}

// DefaultParser normalizes names with names.DefaultPolicy.
var DefaultParser = Parser{Names: names.DefaultPolicy}

// ParseResults parses text with DefaultParser.
func ParseResults(text string) ([]Record, error) {
	return DefaultParser.Parse(text)
}

// Parse decodes a comma-delimited result file with a header row.
//
// Header cells are trimmed and translated through the schema table; unknown
// headers are kept in Record.Extra. Blank lines and rows whose known fields
// are all blank are dropped. A file with only a header, or no text at all,
// yields no records and no error. Any CSV syntax error fails the whole parse
// with ErrMalformedCSV.
func (p Parser) Parse(text string) ([]Record, error) {
	r := csv.NewReader(newCSVReader(text))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedCSV, err)
	}

	cols := make([]headerColumn, len(header))
	for i, h := range header {
		label := strings.TrimSpace(h)
		f, known := schema.Lookup(label)
		cols[i] = headerColumn{label: label, field: f, known: known}
	}

	records := []Record{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}

		rec, ok := p.buildRecord(cols, row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

type headerColumn struct {
	label string
	field schema.Field
	known bool
}

// buildRecord maps one row onto a Record. It reports false when every known
// field is blank.
func (p Parser) buildRecord(cols []headerColumn, row []string) (Record, bool) {
	values := make(map[schema.Field]string, len(schema.ResultFieldSpecs))
	var rec Record
	blank := true

	for i, value := range row {
		if i >= len(cols) {
			break
		}
		col := cols[i]
		if !col.known {
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[col.label] = value
			continue
		}
		values[col.field] = value
		if strings.TrimSpace(value) != "" {
			blank = false
		}
	}
	if blank {
		return Record{}, false
	}

	rec.Position = values[schema.FieldPosition]
	rec.CarNumber = values[schema.FieldNumber]
	rec.DriverName = p.Names.Normalize(values[schema.FieldName])
	rec.Laps = values[schema.FieldLaps]
	rec.Diff = values[schema.FieldDiff]
	rec.Gap = values[schema.FieldGap]
	rec.BestLap = values[schema.FieldBestTime]
	rec.TotalTime = values[schema.FieldTotalTime]
	rec.Sector1 = values[schema.FieldSector1]
	rec.Sector2 = values[schema.FieldSector2]
	rec.Sector3 = values[schema.FieldSector3]
	return rec, true
}

// newCSVReader skips a UTF-8 byte order mark and replaces invalid UTF-8
// sequences so the decoder never sees broken text.
func newCSVReader(text string) io.Reader {
	body, _ := io.ReadAll(utfbom.SkipOnly(strings.NewReader(text)))
	return strings.NewReader(strings.ToValidUTF8(string(body), "\uFFFD"))
}
