// Package export writes race tables as spreadsheets.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/utiming/internal/core"
)

// ContentTypeXLSX is the media type of WriteXLSX output.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	defaultSheet = "Sheet1"
	maxSheetName = 31
)

// Table is one sorted race table ready to export.
type Table struct {
	Sheet   string        // sheet name, sanitized by SheetName
	Title   string        // document title
	Headers []string      // one per column; nil uses Column.Label
	Columns []core.Column // display order
	Records []core.Record // already sorted
}

// WriteXLSX writes t as a single-sheet workbook. Cells hold the rendered
// values. A numeric cell whose text is exactly a number, such as "3" or
// "20.111" but not "07", is stored as a number.
func WriteXLSX(w io.Writer, t Table) (err error) {
	if len(t.Columns) == 0 {
		return errors.New("export: no columns")
	}
	if t.Headers != nil && len(t.Headers) != len(t.Columns) {
		return fmt.Errorf("export: %d headers for %d columns", len(t.Headers), len(t.Columns))
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	sheet := SheetName(t.Sheet)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	if t.Title != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: t.Title, Creator: "uTiming"}); err != nil {
			return fmt.Errorf("export: doc props: %w", err)
		}
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		if t.Headers != nil {
			header[i] = t.Headers[i]
		} else {
			header[i] = c.Label
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	for ri, r := range t.Records {
		row := make([]any, len(t.Columns))
		for ci, c := range t.Columns {
			row[ci] = cellValue(c, r)
		}
		cell, err := excelize.CoordinatesToCellName(1, ri+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", ri+1, err)
		}
	}

	if err := layout(f, sheet, len(t.Columns), len(t.Records)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

func cellValue(c core.Column, r core.Record) any {
	text := c.Render(r)
	if !c.Numeric || !c.Key(r).Finite() {
		return text
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == text {
		return f
	}
	return text
}

// layout styles the header, freezes it and adds an auto filter.
func layout(f *excelize.File, sheet string, cols, rows int) error {
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", bold); err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", last, 12); err != nil {
		return fmt.Errorf("export: col width: %w", err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("export: panes: %w", err)
	}

	ref := fmt.Sprintf("A1:%s%d", last, rows+1)
	if err := f.AutoFilter(sheet, ref, nil); err != nil {
		return fmt.Errorf("export: auto filter: %w", err)
	}
	return nil
}

// SheetName makes s a valid worksheet name: invalid characters become
// dashes and the result is cut to 31 characters. An empty name becomes
// "Resultados".
func SheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(s))
	s = strings.Trim(s, "'")
	if s == "" {
		return "Resultados"
	}
	if runes := []rune(s); len(runes) > maxSheetName {
		s = string(runes[:maxSheetName])
	}
	return s
}
