package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRaces means the index is readable but lists no valid dates.
	ErrNoRaces = errors.New("no races available")

	// ErrIndexUnavailable means the race index could not be retrieved.
	ErrIndexUnavailable = errors.New("race index unavailable")

	// ErrNotFound is wrapped by sources when a result file does not exist.
	ErrNotFound = errors.New("race not found")

	// ErrNoResults means the result file parsed to zero rows.
	ErrNoResults = errors.New("race has no results")

	// ErrMalformedCSV means the result file is not valid CSV.
	ErrMalformedCSV = errors.New("malformed csv")

	ErrInvalidDate = errors.New("invalid race date")
	ErrInvalidSort = errors.New("invalid sort")
)

// DataUnavailableError reports a failed fetch of one race's result file.
type DataUnavailableError struct {
	Date RaceDate
	Err  error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("race data unavailable for %s: %v", e.Date, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the source had no file for the date.
func (e *DataUnavailableError) NotFound() bool {
	return errors.Is(e.Err, ErrNotFound)
}
