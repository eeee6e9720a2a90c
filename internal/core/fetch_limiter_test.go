package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// blockingSource holds every fetch until release is closed.
type blockingSource struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingSource() *blockingSource {
	return &blockingSource{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (b *blockingSource) ListDates(ctx context.Context) ([]string, error) {
	return []string{"20240315"}, nil
}

func (b *blockingSource) FetchCSV(ctx context.Context, date RaceDate) ([]byte, error) {
	b.started <- struct{}{}
	select {
	case <-b.release:
		return []byte(resultHeader), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestFetchLimiter_PassThrough(t *testing.T) {
	src := &fakeSource{dates: []string{"20240315"}, files: map[RaceDate]string{"20240315": oneRow}}
	l := NewFetchLimiter(src, 2, time.Second)

	dates, err := l.ListDates(context.Background())
	if err != nil || len(dates) != 1 {
		t.Fatalf("ListDates() = %v, %v", dates, err)
	}
	body, err := l.FetchCSV(context.Background(), "20240315")
	if err != nil || string(body) != oneRow {
		t.Fatalf("FetchCSV() = %q, %v", body, err)
	}
	if got := l.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount = %d after calls returned, want 0", got)
	}
	if got := l.Available(); got != 2 {
		t.Errorf("Available = %d, want 2", got)
	}
}

func TestFetchLimiter_RejectsWhenFull(t *testing.T) {
	src := newBlockingSource()
	l := NewFetchLimiter(src, 1, 50*time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = l.FetchCSV(context.Background(), "20240315")
	}()
	<-src.started

	if got := l.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}

	_, err := l.FetchCSV(context.Background(), "20240315")
	if !errors.Is(err, ErrTooManyFetches) {
		t.Errorf("second fetch error = %v, want ErrTooManyFetches", err)
	}

	close(src.release)
	wg.Wait()
}

func TestFetchLimiter_CallerCancel(t *testing.T) {
	src := newBlockingSource()
	l := NewFetchLimiter(src, 1, time.Minute)

	go func() { _, _ = l.FetchCSV(context.Background(), "20240315") }()
	<-src.started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.FetchCSV(ctx, "20240315")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}

	close(src.release)
}

func TestFetchLimiter_WaitForDrain(t *testing.T) {
	src := newBlockingSource()
	l := NewFetchLimiter(src, 2, time.Second)

	go func() { _, _ = l.FetchCSV(context.Background(), "20240315") }()
	<-src.started

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	if err := l.WaitForDrain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("WaitForDrain() with fetch in flight = %v, want deadline exceeded", err)
	}

	close(src.release)
	if err := l.WaitForDrain(context.Background()); err != nil {
		t.Errorf("WaitForDrain() = %v, want nil", err)
	}
}

func TestNewFetchLimiter_Defaults(t *testing.T) {
	l := NewFetchLimiter(&fakeSource{}, 0, 0)
	if got := l.Available(); got != DefaultMaxConcurrentFetches {
		t.Errorf("Available = %d, want %d", got, DefaultMaxConcurrentFetches)
	}
	if l.maxWait != DefaultMaxFetchWait {
		t.Errorf("maxWait = %v, want %v", l.maxWait, DefaultMaxFetchWait)
	}
}
