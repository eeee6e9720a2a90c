package core

// fetch_limiter.go bounds the number of concurrent reads against a Source.
//
// A slow upstream (an HTTP mirror or a busy database) would otherwise pile up
// one blocked goroutine per page view. When all slots are occupied, new reads
// wait up to maxWait before failing with ErrTooManyFetches.
//
// WaitForDrain supports graceful shutdown by blocking until in-flight reads
// complete.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyFetches is returned when all fetch slots stay occupied for the
// whole wait. Clients should retry after a short delay.
var ErrTooManyFetches = errors.New("too many concurrent fetches")

// DefaultMaxConcurrentFetches is the default limit for parallel source reads.
const DefaultMaxConcurrentFetches = 8

// DefaultMaxFetchWait is how long to wait for a slot before rejecting.
const DefaultMaxFetchWait = 5 * time.Second

// FetchLimiter wraps a Source and limits concurrent calls into it using a
// semaphore.
type FetchLimiter struct {
	src       Source
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewFetchLimiter allows at most maxConcurrent simultaneous reads from src.
// Reads that cannot acquire a slot within maxWait fail with ErrTooManyFetches.
func NewFetchLimiter(src Source, maxConcurrent int, maxWait time.Duration) *FetchLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentFetches
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxFetchWait
	}

	return &FetchLimiter{
		src:       src,
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// ListDates implements Source.
func (l *FetchLimiter) ListDates(ctx context.Context) ([]string, error) {
	if err := l.acquire(ctx); err != nil {
		return nil, err
	}
	defer l.release()
	return l.src.ListDates(ctx)
}

// FetchCSV implements Source.
func (l *FetchLimiter) FetchCSV(ctx context.Context, date RaceDate) ([]byte, error) {
	if err := l.acquire(ctx); err != nil {
		return nil, err
	}
	defer l.release()
	return l.src.FetchCSV(ctx, date)
}

func (l *FetchLimiter) acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		// Distinguish caller cancellation from our own timeout
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyFetches
	}
}

func (l *FetchLimiter) release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of reads in flight.
func (l *FetchLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Available returns the number of free slots.
func (l *FetchLimiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until all reads complete or ctx is cancelled.
func (l *FetchLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
