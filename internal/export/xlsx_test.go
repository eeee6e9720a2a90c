package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/utiming/internal/core"
)

const raceCSV = "Pos,No.,Nome,Voltas,Diff,Gap,Melhor Tempo,Total Tempo,S1,S2,S3\n" +
	"1,07,JOAO DA SILVA,10,,,1:00.666,10:05.123,20.111,20.222,20.333\n" +
	"2,12,MARIA SOUZA,10,1.500,1.500,1:01.000,10:06.623,20.5,20.2,20.3\n"

func records(t *testing.T) []core.Record {
	t.Helper()
	recs, err := core.ParseResults(raceCSV)
	if err != nil {
		t.Fatalf("ParseResults() error = %v", err)
	}
	return recs
}

func readBack(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteXLSX(t *testing.T) {
	cols := core.Columns()
	var buf bytes.Buffer
	err := WriteXLSX(&buf, Table{
		Sheet:   "20240315",
		Title:   "Bateria de 15 de março de 2024",
		Columns: cols,
		Records: records(t),
	})
	if err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f := readBack(t, &buf)
	if got := f.GetSheetList(); len(got) != 1 || got[0] != "20240315" {
		t.Fatalf("sheets = %v", got)
	}

	rows, err := f.GetRows("20240315")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}

	if rows[0][0] != "Pos" || rows[0][2] != "Nome" || rows[0][len(cols)-1] != "Volta ideal" {
		t.Errorf("header = %v", rows[0])
	}

	leader := rows[1]
	checks := []struct {
		col  string
		want string
	}{
		{core.ColPosition, "1"},
		{core.ColNumber, "07"},
		{core.ColName, "Joao da Silva"},
		{core.ColDiff, "10:05.123"},
		{core.ColGap, "--"},
		{core.ColBestTime, "1:00.666"},
		{core.ColSector1, "20.111"},
		{core.ColIdealLap, "1:00.666"},
	}
	for _, c := range checks {
		idx := indexOf(cols, c.col)
		if leader[idx] != c.want {
			t.Errorf("leader %s = %q, want %q", c.col, leader[idx], c.want)
		}
	}

	if got := rows[2][indexOf(cols, core.ColGap)]; got != "+1.500" {
		t.Errorf("second gap = %q, want +1.500", got)
	}
}

func TestWriteXLSX_Headers(t *testing.T) {
	cols := core.Columns()[:3]
	var buf bytes.Buffer
	err := WriteXLSX(&buf, Table{
		Sheet:   "race",
		Headers: []string{"Pos", "No.", "Name"},
		Columns: cols,
	})
	if err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f := readBack(t, &buf)
	got, err := f.GetCellValue("race", "C1")
	if err != nil || got != "Name" {
		t.Errorf("C1 = %q, %v", got, err)
	}
}

func TestWriteXLSX_Invalid(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, Table{}); err == nil {
		t.Error("WriteXLSX() without columns should fail")
	}
	err := WriteXLSX(&buf, Table{Columns: core.Columns(), Headers: []string{"only one"}})
	if err == nil {
		t.Error("WriteXLSX() with mismatched headers should fail")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on error")
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"20240315", "20240315"},
		{"", "Resultados"},
		{"  ", "Resultados"},
		{"a/b:c", "a-b-c"},
		{"'quoted'", "quoted"},
		{"Bateria de 15 de novembro de 2024", "Bateria de 15 de novembro de 20"},
	}
	for _, tt := range tests {
		if got := SheetName(tt.in); got != tt.want {
			t.Errorf("SheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func indexOf(cols []core.Column, id string) int {
	for i, c := range cols {
		if c.ID == id {
			return i
		}
	}
	return -1
}
