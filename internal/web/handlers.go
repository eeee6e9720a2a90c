package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/utiming/internal/core"
	"github.com/JonMunkholm/utiming/internal/export"
	"github.com/JonMunkholm/utiming/internal/locale"
	"github.com/JonMunkholm/utiming/internal/logging"
	"github.com/JonMunkholm/utiming/internal/web/templates"
)

// readyTimeout bounds the source probe of /readyz.
const readyTimeout = 3 * time.Second

// handleIndex renders the race list, newest first.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	dates, err := s.service.ListDates(r.Context())
	if err != nil && !errors.Is(err, core.ErrIndexUnavailable) {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.renderIndex(w, r, dates, err)
}

// handleLatest redirects to the newest race. An empty or unreadable list
// renders the index page in its empty state.
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	latest, err := s.service.Latest(r.Context())
	switch {
	case err == nil:
		http.Redirect(w, r, withLang(r, raceHref(latest), nil), http.StatusFound)
	case errors.Is(err, core.ErrNoRaces):
		s.renderIndex(w, r, nil, nil)
	case errors.Is(err, core.ErrIndexUnavailable):
		s.renderIndex(w, r, nil, err)
	default:
		s.respondError(w, r, err, statusFor(err))
	}
}

// renderIndex writes the index page. A non-nil listErr is shown as a notice
// in place of the list.
func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, dates []core.RaceDate, listErr error) {
	l := s.localizerFrom(r.Context())
	title := l.T("index.title")

	data := templates.IndexData{
		Page:    s.page(l, title),
		Heading: title,
		Empty:   l.T("index.empty"),
	}
	if listErr != nil {
		n := notice(l, s.userMessage(r, listErr))
		data.Notice = &n
		logging.FromContext(r.Context()).Warn("race index unavailable", "error", listErr)
	}
	if len(dates) > 0 {
		data.Count = l.Plural("index.count", len(dates))
		data.Latest = &templates.Crumb{Label: l.T("index.latest"), Href: withLang(r, "/races/latest", nil)}
		data.Races = make([]templates.RaceLink, len(dates))
		for i, d := range dates {
			data.Races[i] = templates.RaceLink{
				Date:  d.String(),
				Label: l.LongDate(d.String()),
				Href:  withLang(r, raceHref(d), nil),
			}
		}
	}

	s.render(w, r, http.StatusOK, templates.IndexPage(data))
}

// handleRace renders one race table, or a download when the date carries a
// .csv or .xlsx suffix.
func (s *Server) handleRace(w http.ResponseWriter, r *http.Request) {
	raw, suffix := splitDateParam(r)
	date, err := core.ParseRaceDate(raw)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	switch suffix {
	case suffixCSV:
		s.handleCSV(w, r, date)
		return
	case suffixXLSX:
		s.handleXLSX(w, r, date)
		return
	}

	view, state, err := s.loadSorted(r, date)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	l := s.localizerFrom(r.Context())
	s.render(w, r, http.StatusOK, templates.RacePage(s.buildRaceData(r, l, view, state)))
}

// loadSorted validates the sort parameters, then loads the race.
func (s *Server) loadSorted(r *http.Request, date core.RaceDate) (*core.View, core.SortState, error) {
	state, err := requestSort(r, core.Columns())
	if err != nil {
		return nil, nil, err
	}
	view, err := s.service.LoadView(r.Context(), date)
	if err != nil {
		return nil, nil, err
	}
	return view, state, nil
}

// handleCSV sends the race file exactly as the source holds it.
func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request, date core.RaceDate) {
	body, err := s.service.RawCSV(r.Context(), date)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	setDownloadHeaders(w, "text/csv; charset=utf-8", date.String()+suffixCSV, len(body))
	if _, err := w.Write(body); err != nil {
		logging.FromContext(r.Context()).Warn("csv download interrupted", "date", date, "error", err)
	}
}

// handleXLSX sends the sorted, formatted table as a spreadsheet.
func (s *Server) handleXLSX(w http.ResponseWriter, r *http.Request, date core.RaceDate) {
	view, state, err := s.loadSorted(r, date)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	l := s.localizerFrom(r.Context())
	headers := make([]string, len(view.Columns))
	for i, c := range view.Columns {
		headers[i] = l.Column(c)
	}

	var buf bytes.Buffer
	err = export.WriteXLSX(&buf, export.Table{
		Sheet:   date.String(),
		Title:   raceTitle(l, date),
		Headers: headers,
		Columns: view.Columns,
		Records: view.Sorted(state),
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	setDownloadHeaders(w, export.ContentTypeXLSX, date.String()+suffixXLSX, buf.Len())
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("xlsx download interrupted", "date", date, "error", err)
	}
}

func setDownloadHeaders(w http.ResponseWriter, contentType, filename string, size int) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(size))
	w.Header().Set("Cache-Control", "no-store")
}

// RacesResponse is the body of GET /api/races.
type RacesResponse struct {
	Dates []core.RaceDate `json:"dates"`
}

// handleAPIRaces lists the race dates, newest first.
func (s *Server) handleAPIRaces(w http.ResponseWriter, r *http.Request) {
	dates, err := s.service.ListDates(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, RacesResponse{Dates: dates})
}

// ColumnResponse describes one column of a race.
type ColumnResponse struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Numeric bool   `json:"numeric"`
}

// CellResponse is one cell: the text shown and the value it sorts by.
type CellResponse struct {
	Display string   `json:"display"`
	Key     core.Key `json:"key"`
}

// RaceResponse is the body of GET /api/races/{date}.
type RaceResponse struct {
	Date    core.RaceDate    `json:"date"`
	Title   string           `json:"title"`
	LoadID  string           `json:"load_id"`
	Columns []ColumnResponse `json:"columns"`
	Rows    [][]CellResponse `json:"rows"`
	Sort    core.SortState   `json:"sort"`
}

// handleAPIRace returns one race as columns and sorted rows.
func (s *Server) handleAPIRace(w http.ResponseWriter, r *http.Request) {
	date, err := core.ParseRaceDate(chi.URLParam(r, "date"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	view, state, err := s.loadSorted(r, date)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, raceResponse(s.localizerFrom(r.Context()), view, state))
}

func raceResponse(l *locale.Localizer, view *core.View, state core.SortState) RaceResponse {
	resp := RaceResponse{
		Date:    view.Date,
		Title:   raceTitle(l, view.Date),
		LoadID:  view.LoadID,
		Columns: make([]ColumnResponse, len(view.Columns)),
		Sort:    state,
	}
	for i, c := range view.Columns {
		resp.Columns[i] = ColumnResponse{ID: c.ID, Label: l.Column(c), Numeric: c.Numeric}
	}

	records := view.Sorted(state)
	resp.Rows = make([][]CellResponse, len(records))
	for i, rec := range records {
		cells := make([]CellResponse, len(view.Columns))
		for j, c := range view.Columns {
			cells[j] = CellResponse{Display: c.Render(rec), Key: c.Key(rec)}
		}
		resp.Rows[i] = cells
	}
	if resp.Sort == nil {
		resp.Sort = core.SortState{}
	}
	return resp
}

// handleHealth reports that the process is serving.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports whether the race source answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if _, err := s.service.ListDates(ctx); err != nil {
		logging.FromContext(ctx).Warn("readiness check failed", "error", err)
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"code":   core.MapError(err).Code,
		})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// render writes an HTML component with the given status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "path", r.URL.Path, "error", err)
	}
}
