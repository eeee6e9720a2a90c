package source

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/JonMunkholm/utiming/internal/core"
)

const sampleCSV = "Pos,No.,Nome\n1,07,JOAO DA SILVA\n"

func TestFS_ListDates_Index(t *testing.T) {
	fsys := fstest.MapFS{
		"index.json":   {Data: []byte(`["20240101","20240615"]`)},
		"20240101.csv": {Data: []byte(sampleCSV)},
		"20991231.csv": {Data: []byte(sampleCSV)}, // not in index
	}
	src := NewFS(fsys, "", 0)

	dates, err := src.ListDates(context.Background())
	if err != nil {
		t.Fatalf("ListDates() error = %v", err)
	}
	if len(dates) != 2 || dates[0] != "20240101" || dates[1] != "20240615" {
		t.Errorf("ListDates() = %v, want the index contents", dates)
	}
}

func TestFS_ListDates_GlobFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"20240615.csv":     {Data: []byte(sampleCSV)},
		"20240101.csv":     {Data: []byte(sampleCSV)},
		"notes.txt":        {Data: []byte("hello")},
		"archive/2023.csv": {Data: []byte(sampleCSV)},
	}
	src := NewFS(fsys, "", 0)

	dates, err := src.ListDates(context.Background())
	if err != nil {
		t.Fatalf("ListDates() error = %v", err)
	}
	if len(dates) != 2 || dates[0] != "20240101" || dates[1] != "20240615" {
		t.Errorf("ListDates() = %v, want top-level csv names", dates)
	}
}

func TestFS_ListDates_BadIndex(t *testing.T) {
	src := NewFS(fstest.MapFS{"index.json": {Data: []byte(`{"oops":`)}}, "", 0)
	if _, err := src.ListDates(context.Background()); err == nil {
		t.Error("ListDates() with broken index should fail")
	}
}

func TestFS_FetchCSV(t *testing.T) {
	raw := "\ufeff" + sampleCSV
	fsys := fstest.MapFS{
		"20240101.csv": {Data: []byte(raw)},
		"20240102.csv": {Data: make([]byte, 64)},
	}
	src := NewFS(fsys, "", 48)
	ctx := context.Background()

	t.Run("bytes unchanged", func(t *testing.T) {
		body, err := src.FetchCSV(ctx, "20240101")
		if err != nil {
			t.Fatalf("FetchCSV() error = %v", err)
		}
		if string(body) != raw {
			t.Errorf("FetchCSV() = %q, want %q", body, raw)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := src.FetchCSV(ctx, "20240103")
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("error = %v, want core.ErrNotFound", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		_, err := src.FetchCSV(ctx, "20240102")
		if !errors.Is(err, ErrTooLarge) {
			t.Errorf("error = %v, want ErrTooLarge", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := src.FetchCSV(cctx, "20240101"); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestFS_WithService(t *testing.T) {
	fsys := fstest.MapFS{
		"20240101.csv": {Data: []byte(sampleCSV)},
		"20240615.csv": {Data: []byte(sampleCSV)},
	}
	svc := core.NewService(NewFS(fsys, "", 0))

	latest, err := svc.Latest(context.Background())
	if err != nil || latest != "20240615" {
		t.Fatalf("Latest() = %q, %v", latest, err)
	}
	view, err := svc.LoadView(context.Background(), latest)
	if err != nil {
		t.Fatalf("LoadView() error = %v", err)
	}
	if view.Records[0].DriverName != "Joao da Silva" {
		t.Errorf("DriverName = %q", view.Records[0].DriverName)
	}
}
