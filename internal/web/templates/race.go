package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HeaderCell is one sortable column header.
type HeaderCell struct {
	ID    string
	Label string
	Href  string // link that applies the next sort state
	Dir   string // "asc", "desc" or "" when not sorted
}

// Cell is one rendered table cell.
type Cell struct {
	Class string
	Text  string
}

// RaceData is the race table page.
type RaceData struct {
	Page
	Heading   string
	Summary   string // "12 pilotos"
	Hint      string
	Headers   []HeaderCell
	Rows      [][]Cell
	Downloads []Crumb
}

// RacePage renders one race as a table with sort links in the headers.
func RacePage(d RaceData) templ.Component {
	return withLayout(d.Page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>")
		h.text(d.Heading)
		h.raw("</h1>")

		if d.Summary != "" {
			h.raw(`<p class="summary">`)
			h.text(d.Summary)
			h.raw("</p>")
		}

		h.raw(`<div class="results"><table><thead><tr>`)
		for _, c := range d.Headers {
			h.raw("<th")
			h.attr("class", c.ID)
			h.attr("aria-sort", ariaSort(c.Dir))
			h.raw("><a")
			h.href(c.Href)
			if d.Hint != "" {
				h.attr("title", d.Hint)
			}
			h.raw(">")
			h.text(c.Label + indicator(c.Dir))
			h.raw("</a></th>")
		}
		h.raw("</tr></thead><tbody>")
		for _, row := range d.Rows {
			h.raw("<tr>")
			for _, cell := range row {
				h.raw("<td")
				h.attr("class", cell.Class)
				h.raw(">")
				h.text(cell.Text)
				h.raw("</td>")
			}
			h.raw("</tr>")
		}
		h.raw("</tbody></table></div>")

		if len(d.Downloads) > 0 {
			h.raw(`<p class="downloads">`)
			for _, dl := range d.Downloads {
				h.raw("<a")
				h.href(dl.Href)
				h.attr("download", "")
				h.raw(">")
				h.text(dl.Label)
				h.raw("</a>")
			}
			h.raw("</p>")
		}
		return h.err
	}))
}

func indicator(dir string) string {
	switch dir {
	case "asc":
		return " ▲"
	case "desc":
		return " ▼"
	}
	return ""
}

func ariaSort(dir string) string {
	switch dir {
	case "asc":
		return "ascending"
	case "desc":
		return "descending"
	}
	return "none"
}
