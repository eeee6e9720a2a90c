package core

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/JonMunkholm/utiming/internal/timing"
)

const placeholder = timing.Placeholder

// Column IDs, in display order.
const (
	ColPosition  = "position"
	ColNumber    = "number"
	ColName      = "name"
	ColLaps      = "laps"
	ColDiff      = "diff"
	ColGap       = "gap"
	ColBestTime  = "bestTime"
	ColTotalTime = "totalTime"
	ColSector1   = "sector1"
	ColSector2   = "sector2"
	ColSector3   = "sector3"
	ColIdealLap  = "idealLap"
)

// Column describes one table column. Columns are stateless and safe to share.
type Column struct {
	ID      string
	Label   string // pt-BR header, used when no translation is loaded
	LabelID string // message ID for the header translation
	Numeric bool   // Key returns numeric keys

	Key     func(Record) Key
	Compare func(a, b Record) int
	Render  func(Record) string
}

// columnSchema is the fixed table layout.
var columnSchema = []Column{
	numericColumn(ColPosition, "Pos", func(r Record) string { return r.Position }),
	{
		ID:      ColNumber,
		Label:   "No.",
		Numeric: true,
		Key:     func(r Record) Key { return NumKey(ParseDecimal(r.CarNumber)) },
		Compare: func(a, b Record) int {
			if c := compareFloat(ParseDecimal(a.CarNumber), ParseDecimal(b.CarNumber)); c != 0 {
				return c
			}
			return strings.Compare(a.CarNumber, b.CarNumber)
		},
		Render: func(r Record) string { return r.CarNumber },
	},
	{
		ID:      ColName,
		Label:   "Nome",
		Key:     func(r Record) Key { return TextKey(r.DriverName) },
		Compare: func(a, b Record) int { return compareNames(a.DriverName, b.DriverName) },
		Render:  func(r Record) string { return r.DriverName },
	},
	numericColumn(ColLaps, "Voltas", func(r Record) string { return r.Laps }),
	{
		ID:      ColDiff,
		Label:   "Diff",
		Key:     func(r Record) Key { return TextKey(r.Diff) },
		Compare: func(a, b Record) int { return CompareLapAware(a.Diff, b.Diff) },
		Render:  renderDiff,
	},
	{
		ID:      ColGap,
		Label:   "Gap",
		Key:     func(r Record) Key { return TextKey(r.Gap) },
		Compare: func(a, b Record) int { return CompareLapAware(a.Gap, b.Gap) },
		Render:  renderGap,
	},
	durationColumn(ColBestTime, "Melhor volta", func(r Record) string { return r.BestLap }),
	durationColumn(ColTotalTime, "Tempo total", func(r Record) string { return r.TotalTime }),
	sectorColumn(ColSector1, "Setor 1", func(r Record) string { return r.Sector1 }),
	sectorColumn(ColSector2, "Setor 2", func(r Record) string { return r.Sector2 }),
	sectorColumn(ColSector3, "Setor 3", func(r Record) string { return r.Sector3 }),
	{
		ID:      ColIdealLap,
		Label:   "Volta ideal",
		Numeric: true,
		Key:     func(r Record) Key { return NumKey(IdealLap(r)) },
		Compare: func(a, b Record) int { return compareFloat(IdealLap(a), IdealLap(b)) },
		Render:  func(r Record) string { return timing.FormatSeconds(IdealLap(r)) },
	},
}

func init() {
	for i := range columnSchema {
		columnSchema[i].LabelID = "column." + columnSchema[i].ID
	}
}

// Columns returns the table columns in display order.
func Columns() []Column {
	out := make([]Column, len(columnSchema))
	copy(out, columnSchema)
	return out
}

// ColumnByID finds a column by its ID.
func ColumnByID(cols []Column, id string) (Column, bool) {
	for _, c := range cols {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// IdealLap returns the sum of the three sectors in seconds. It is NaN when
// any sector cannot be read, so an incomplete lap never looks faster than a
// complete one.
func IdealLap(r Record) float64 {
	return ParseDecimal(r.Sector1) + ParseDecimal(r.Sector2) + ParseDecimal(r.Sector3)
}

// renderDiff shows the leader's total time when there is no diff.
func renderDiff(r Record) string {
	if r.Diff == "" {
		return r.TotalTime
	}
	return "+" + strings.TrimPrefix(r.Diff, "+")
}

func renderGap(r Record) string {
	if r.Diff == "" {
		return placeholder
	}
	if HasLapMarker(r.Gap) {
		return "+" + strings.TrimPrefix(r.Gap, "+")
	}
	f := ParseDecimal(r.Gap)
	if !finite(f) {
		return placeholder
	}
	if f < 0 {
		return formatDecimal(f)
	}
	return "+" + formatDecimal(f)
}

func numericColumn(id, label string, value func(Record) string) Column {
	return Column{
		ID:      id,
		Label:   label,
		Numeric: true,
		Key:     func(r Record) Key { return NumKey(ParseDecimal(value(r))) },
		Compare: func(a, b Record) int { return compareFloat(ParseDecimal(value(a)), ParseDecimal(value(b))) },
		Render:  value,
	}
}

// durationColumn sorts by the parsed time and shows the source text as is.
func durationColumn(id, label string, value func(Record) string) Column {
	return Column{
		ID:      id,
		Label:   label,
		Numeric: true,
		Key:     func(r Record) Key { return NumKey(timing.ParseDuration(value(r)).SortKey()) },
		Compare: func(a, b Record) int {
			return timing.ParseDuration(value(a)).Compare(timing.ParseDuration(value(b)))
		},
		Render: value,
	}
}

func sectorColumn(id, label string, value func(Record) string) Column {
	return Column{
		ID:      id,
		Label:   label,
		Numeric: true,
		Key:     func(r Record) Key { return NumKey(ParseDecimal(value(r))) },
		Compare: func(a, b Record) int { return compareFloat(ParseDecimal(value(a)), ParseDecimal(value(b))) },
		Render:  func(r Record) string { return formatDecimal(ParseDecimal(value(r))) },
	}
}

// Collators keep internal buffers and are not safe for concurrent use.
var collators = sync.Pool{
	New: func() any { return collate.New(language.BrazilianPortuguese) },
}

// compareNames orders names with Portuguese collation, falling back to byte
// order for names the collator treats as equal.
func compareNames(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)

	if r := c.CompareString(a, b); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}
