package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/JonMunkholm/utiming/internal/core"
)

var _ core.LoadObserver = (*Metrics)(nil)

func TestObserveLoad(t *testing.T) {
	m := New()

	m.ObserveLoad(core.OutcomeOK, 12, 20*time.Millisecond)
	m.ObserveLoad(core.OutcomeOK, 8, 10*time.Millisecond)
	m.ObserveLoad(core.OutcomeNotFound, 0, time.Millisecond)

	if got := testutil.ToFloat64(m.loads.WithLabelValues(core.OutcomeOK)); got != 2 {
		t.Errorf("ok loads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.loads.WithLabelValues(core.OutcomeNotFound)); got != 1 {
		t.Errorf("not_found loads = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.loadDuration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/races/{date}", http.StatusOK, time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/races/{date}", http.StatusOK, time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/races/{date}", "200")); got != 2 {
		t.Errorf("requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("unmatched requests = %v, want 1", got)
	}
}

func TestRegisterGauge(t *testing.T) {
	m := New()
	if err := m.RegisterGauge("fetches_in_flight", "Fetches in flight.", func() float64 { return 3 }); err != nil {
		t.Fatalf("RegisterGauge() error = %v", err)
	}
	if err := m.RegisterGauge("fetches_in_flight", "Fetches in flight.", func() float64 { return 3 }); err == nil {
		t.Error("registering the same gauge twice should fail")
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveLoad(core.OutcomeOK, 5, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`utiming_race_loads_total{outcome="ok"} 1`,
		"utiming_race_rows_count 1",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
