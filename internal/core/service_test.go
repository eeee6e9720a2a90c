package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeSource serves files from memory.
type fakeSource struct {
	dates    []string
	files    map[RaceDate]string
	indexErr error
	fetchErr error
}

func (f *fakeSource) ListDates(ctx context.Context) ([]string, error) {
	if f.indexErr != nil {
		return nil, f.indexErr
	}
	return f.dates, nil
}

func (f *fakeSource) FetchCSV(ctx context.Context, date RaceDate) ([]byte, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	body, ok := f.files[date]
	if !ok {
		return nil, fmt.Errorf("%s: %w", date, ErrNotFound)
	}
	return []byte(body), nil
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
	rows     []int
}

func (o *recordingObserver) ObserveLoad(outcome string, rows int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
	o.rows = append(o.rows, rows)
}

const oneRow = resultHeader +
	`1,07,JOAO DA SILVA,15,,,"1:02.345","15:30.000",20.111,20.222,20.333` + "\n"

func TestService_ListDates(t *testing.T) {
	src := &fakeSource{dates: []string{"20240101", "bogus", "20240615", "20240101", " 20231230 ", "20241340"}}
	svc := NewService(src)

	dates, err := svc.ListDates(context.Background())
	if err != nil {
		t.Fatalf("ListDates() error = %v", err)
	}
	want := []RaceDate{"20240615", "20240101", "20231230"}
	if len(dates) != len(want) {
		t.Fatalf("ListDates() = %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("ListDates()[%d] = %q, want %q", i, dates[i], want[i])
		}
	}
}

func TestService_ListDates_Errors(t *testing.T) {
	cause := errors.New("connection refused")
	svc := NewService(&fakeSource{indexErr: cause})

	_, err := svc.ListDates(context.Background())
	if !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("error = %v, want ErrIndexUnavailable", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want cause preserved", err)
	}
}

func TestService_Latest(t *testing.T) {
	t.Run("newest date", func(t *testing.T) {
		svc := NewService(&fakeSource{dates: []string{"20240101", "20240615"}})
		got, err := svc.Latest(context.Background())
		if err != nil {
			t.Fatalf("Latest() error = %v", err)
		}
		if got != "20240615" {
			t.Errorf("Latest() = %q, want %q", got, "20240615")
		}
	})

	t.Run("empty index", func(t *testing.T) {
		svc := NewService(&fakeSource{dates: []string{"nope"}})
		if _, err := svc.Latest(context.Background()); !errors.Is(err, ErrNoRaces) {
			t.Errorf("Latest() error = %v, want ErrNoRaces", err)
		}
	})

	t.Run("index failure is not empty", func(t *testing.T) {
		svc := NewService(&fakeSource{indexErr: errors.New("boom")})
		_, err := svc.Latest(context.Background())
		if errors.Is(err, ErrNoRaces) || !errors.Is(err, ErrIndexUnavailable) {
			t.Errorf("Latest() error = %v, want ErrIndexUnavailable only", err)
		}
	})
}

func TestService_LoadView(t *testing.T) {
	obs := &recordingObserver{}
	src := &fakeSource{files: map[RaceDate]string{
		"20240315": oneRow,
		"20240316": resultHeader,
		"20240317": resultHeader + "1,\"BROKEN\n",
	}}
	svc := NewService(src, WithObserver(obs))
	ctx := context.Background()

	t.Run("loads records", func(t *testing.T) {
		view, err := svc.LoadView(ctx, "20240315")
		if err != nil {
			t.Fatalf("LoadView() error = %v", err)
		}
		if view.Date != "20240315" {
			t.Errorf("Date = %q", view.Date)
		}
		if view.LoadID == "" {
			t.Error("LoadID is empty")
		}
		if len(view.Records) != 1 || view.Records[0].DriverName != "Joao da Silva" {
			t.Errorf("Records = %+v", view.Records)
		}
		if len(view.Columns) != 12 {
			t.Errorf("got %d columns, want 12", len(view.Columns))
		}
		if view.Sort.Direction(ColPosition) != DirAsc {
			t.Errorf("Sort = %+v, want position ascending", view.Sort)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := svc.LoadView(ctx, "20990101")
		var du *DataUnavailableError
		if !errors.As(err, &du) {
			t.Fatalf("error = %v, want *DataUnavailableError", err)
		}
		if du.Date != "20990101" || !du.NotFound() {
			t.Errorf("DataUnavailableError = %+v", du)
		}
	})

	t.Run("header only", func(t *testing.T) {
		if _, err := svc.LoadView(ctx, "20240316"); !errors.Is(err, ErrNoResults) {
			t.Errorf("error = %v, want ErrNoResults", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		if _, err := svc.LoadView(ctx, "20240317"); !errors.Is(err, ErrMalformedCSV) {
			t.Errorf("error = %v, want ErrMalformedCSV", err)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		if _, err := svc.LoadView(ctx, "../x"); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("error = %v, want ErrInvalidDate", err)
		}
	})

	want := []string{OutcomeOK, OutcomeNotFound, OutcomeNoResults, OutcomeMalformed, OutcomeInvalidDate}
	if len(obs.outcomes) != len(want) {
		t.Fatalf("outcomes = %v, want %v", obs.outcomes, want)
	}
	for i := range want {
		if obs.outcomes[i] != want[i] {
			t.Errorf("outcome[%d] = %q, want %q", i, obs.outcomes[i], want[i])
		}
	}
	if obs.rows[0] != 1 {
		t.Errorf("rows observed = %d, want 1", obs.rows[0])
	}
}

func TestService_LoadView_FetchFailure(t *testing.T) {
	obs := &recordingObserver{}
	svc := NewService(&fakeSource{fetchErr: errors.New("status 502")}, WithObserver(obs))

	_, err := svc.LoadView(context.Background(), "20240315")
	var du *DataUnavailableError
	if !errors.As(err, &du) || du.NotFound() {
		t.Fatalf("error = %v, want DataUnavailableError (not a 404)", err)
	}
	if obs.outcomes[0] != OutcomeUnavailable {
		t.Errorf("outcome = %q, want %q", obs.outcomes[0], OutcomeUnavailable)
	}
}

func TestService_RawCSV(t *testing.T) {
	body := "\ufeff" + oneRow
	svc := NewService(&fakeSource{files: map[RaceDate]string{"20240315": body}})

	got, err := svc.RawCSV(context.Background(), "20240315")
	if err != nil {
		t.Fatalf("RawCSV() error = %v", err)
	}
	if string(got) != body {
		t.Error("RawCSV() must return the bytes unchanged")
	}

	if _, err := svc.RawCSV(context.Background(), "x"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("RawCSV(invalid) error = %v, want ErrInvalidDate", err)
	}
}

func TestView_Sorted(t *testing.T) {
	view := &View{Columns: Columns(), Records: sampleRecords(), Sort: DefaultSort()}

	if got := positions(view.Sorted(nil)); got[0] != "1" {
		t.Errorf("Sorted(nil) = %q, want default order", got)
	}
	if got := positions(view.Sorted(SortState{})); got[0] != "3" {
		t.Errorf("Sorted(empty) = %q, want file order", got)
	}
}
