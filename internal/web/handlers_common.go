package web

// This file contains shared helpers used across handlers.

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/utiming/internal/core"
	"github.com/JonMunkholm/utiming/internal/locale"
	"github.com/JonMunkholm/utiming/internal/web/templates"
)

// Download suffixes accepted after a race date.
const (
	suffixCSV  = ".csv"
	suffixXLSX = ".xlsx"
)

// page builds the shared page data. The trail always starts at
// "uTiming / Baterias".
func (s *Server) page(l *locale.Localizer, title string, trail ...templates.Crumb) templates.Page {
	crumbs := []templates.Crumb{
		{Label: l.T("app.name"), Href: "/"},
		{Label: l.T("nav.races"), Href: "/races"},
	}
	return templates.Page{
		Lang:   l.Lang(),
		Title:  title + " · " + l.T("app.name"),
		Crumbs: append(crumbs, trail...),
	}
}

func notice(l *locale.Localizer, msg core.UserMessage) templates.Notice {
	return templates.Notice{
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
		CodeTag: l.T("error.code"),
	}
}

// withLang returns path with query, carrying over an explicit ?lang= so
// links keep the chosen language.
func withLang(r *http.Request, path string, query url.Values) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if query == nil {
			query = url.Values{}
		}
		query.Set("lang", lang)
	}
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// sortQuery encodes state as sort and dir parameters. An empty state is
// written as sort=none so it is not mistaken for the default.
func sortQuery(state core.SortState) url.Values {
	q := url.Values{}
	spec, ok := state.Active()
	if !ok {
		q.Set("sort", core.SortNone)
		return q
	}
	q.Set("sort", spec.Column)
	if spec.Desc {
		q.Set("dir", core.DirDesc)
	} else {
		q.Set("dir", core.DirAsc)
	}
	return q
}

// requestSort reads the sort state from the query string.
func requestSort(r *http.Request, cols []core.Column) (core.SortState, error) {
	q := r.URL.Query()
	return core.ParseSortState(q.Get("sort"), q.Get("dir"), cols)
}

// splitDateParam separates a download suffix from the {date} route param.
func splitDateParam(r *http.Request) (raw, suffix string) {
	raw = chi.URLParam(r, "date")
	for _, sfx := range []string{suffixCSV, suffixXLSX} {
		if d, ok := strings.CutSuffix(raw, sfx); ok {
			return d, sfx
		}
	}
	return raw, ""
}

func raceHref(date core.RaceDate) string {
	return "/races/" + date.String()
}

// raceTitle is "Bateria de 15 de março de 2024".
func raceTitle(l *locale.Localizer, date core.RaceDate) string {
	return l.Tf("race.title", map[string]any{"Date": l.LongDate(date.String())})
}

// buildRaceData turns a sorted view into the table page data.
func (s *Server) buildRaceData(r *http.Request, l *locale.Localizer, view *core.View, state core.SortState) templates.RaceData {
	title := raceTitle(l, view.Date)
	base := raceHref(view.Date)

	headers := make([]templates.HeaderCell, len(view.Columns))
	for i, c := range view.Columns {
		headers[i] = templates.HeaderCell{
			ID:    c.ID,
			Label: l.Column(c),
			Href:  withLang(r, base, sortQuery(state.Toggle(c.ID))),
			Dir:   state.Direction(c.ID),
		}
	}

	records := view.Sorted(state)
	rows := make([][]templates.Cell, len(records))
	for i, rec := range records {
		cells := make([]templates.Cell, len(view.Columns))
		for j, c := range view.Columns {
			cells[j] = templates.Cell{Class: c.ID, Text: c.Render(rec)}
		}
		rows[i] = cells
	}

	return templates.RaceData{
		Page:    s.page(l, title, templates.Crumb{Label: title}),
		Heading: title,
		Summary: l.Plural("race.drivers", len(records)),
		Hint:    l.T("race.sortHint"),
		Headers: headers,
		Rows:    rows,
		Downloads: []templates.Crumb{
			{Label: l.T("download.csv"), Href: base + suffixCSV},
			{Label: l.T("download.xlsx"), Href: withLang(r, base+suffixXLSX, sortQuery(state))},
		},
	}
}
