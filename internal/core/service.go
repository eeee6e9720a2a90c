package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/JonMunkholm/utiming/internal/logging"
)

// Load outcomes reported to a LoadObserver.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
	OutcomeMalformed   = "malformed"
	OutcomeNoResults   = "no_results"
	OutcomeInvalidDate = "invalid_date"
)

// LoadObserver receives the outcome of every view load.
type LoadObserver interface {
	ObserveLoad(outcome string, rows int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveLoad(string, int, time.Duration) {}

// Service provides the race views on top of a Source.
// It keeps no state between calls and is safe for concurrent use.
type Service struct {
	src      Source
	parser   Parser
	observer LoadObserver
}

// Option configures a Service.
type Option func(*Service)

// WithParser replaces DefaultParser, for example to swap the name policy.
func WithParser(p Parser) Option {
	return func(s *Service) { s.parser = p }
}

// WithObserver reports load outcomes to o.
func WithObserver(o LoadObserver) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewService creates a new Service reading from src.
func NewService(src Source, opts ...Option) *Service {
	s := &Service{
		src:      src,
		parser:   DefaultParser,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListDates returns the valid, distinct race dates, newest first.
// Invalid index entries are skipped with a warning. A readable but empty
// index returns an empty slice and no error.
func (s *Service) ListDates(ctx context.Context) ([]RaceDate, error) {
	raw, err := s.src.ListDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}

	logger := logging.FromContext(ctx)
	seen := make(map[RaceDate]bool, len(raw))
	dates := make([]RaceDate, 0, len(raw))
	for _, entry := range raw {
		d, err := ParseRaceDate(entry)
		if err != nil {
			logger.Warn("skipping invalid index entry", "entry", entry)
			continue
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}

	SortDatesDesc(dates)
	return dates, nil
}

// Latest returns the newest race date, or ErrNoRaces.
func (s *Service) Latest(ctx context.Context) (RaceDate, error) {
	dates, err := s.ListDates(ctx)
	if err != nil {
		return "", err
	}
	if len(dates) == 0 {
		return "", ErrNoRaces
	}
	return dates[0], nil
}

// LoadView fetches and parses one race.
//
// Fetch failures return *DataUnavailableError. A file that is not valid CSV
// returns an error wrapping ErrMalformedCSV and a file without rows an error
// wrapping ErrNoResults. The whole file loads or nothing does.
func (s *Service) LoadView(ctx context.Context, date RaceDate) (*View, error) {
	start := time.Now()
	loadID := uuid.NewString()
	logger := logging.WithFields(ctx, "load_id", loadID, "date", date)

	if _, err := ParseRaceDate(string(date)); err != nil {
		s.observer.ObserveLoad(OutcomeInvalidDate, 0, time.Since(start))
		return nil, err
	}

	body, err := s.fetch(ctx, date)
	if err != nil {
		outcome := OutcomeUnavailable
		var du *DataUnavailableError
		if errors.As(err, &du) && du.NotFound() {
			outcome = OutcomeNotFound
		}
		s.observer.ObserveLoad(outcome, 0, time.Since(start))
		logger.Warn("race fetch failed", "error", err)
		return nil, err
	}

	records, err := s.parser.Parse(string(body))
	if err != nil {
		s.observer.ObserveLoad(OutcomeMalformed, 0, time.Since(start))
		logger.Warn("race parse failed", "error", err)
		return nil, fmt.Errorf("parse race %s: %w", date, err)
	}
	if len(records) == 0 {
		s.observer.ObserveLoad(OutcomeNoResults, 0, time.Since(start))
		return nil, fmt.Errorf("%w: %s", ErrNoResults, date)
	}

	elapsed := time.Since(start)
	s.observer.ObserveLoad(OutcomeOK, len(records), elapsed)
	logger.Info("race loaded",
		"rows", len(records),
		"size", humanize.Bytes(uint64(len(body))),
		"duration_ms", elapsed.Milliseconds(),
	)

	return &View{
		Date:    date,
		LoadID:  loadID,
		Columns: Columns(),
		Records: records,
		Sort:    DefaultSort(),
	}, nil
}

// RawCSV returns the result file exactly as the source holds it.
func (s *Service) RawCSV(ctx context.Context, date RaceDate) ([]byte, error) {
	if _, err := ParseRaceDate(string(date)); err != nil {
		return nil, err
	}
	return s.fetch(ctx, date)
}

func (s *Service) fetch(ctx context.Context, date RaceDate) ([]byte, error) {
	body, err := s.src.FetchCSV(ctx, date)
	if err != nil {
		return nil, &DataUnavailableError{Date: date, Err: err}
	}
	return body, nil
}
