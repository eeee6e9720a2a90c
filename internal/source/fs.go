package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/JonMunkholm/utiming/internal/core"
	"github.com/JonMunkholm/utiming/internal/logging"
)

// FS reads races from a file system laid out as:
//
//	index.json      JSON array of YYYYMMDD strings (optional)
//	20240315.csv    one result file per date
//
// Without an index file the dates are taken from the *.csv names.
type FS struct {
	fsys     fs.FS
	index    string
	maxBytes int64
}

// NewFS creates a file system source. Empty index and zero maxBytes select
// the defaults.
func NewFS(fsys fs.FS, index string, maxBytes int64) *FS {
	if index == "" {
		index = DefaultIndexName
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &FS{fsys: fsys, index: index, maxBytes: maxBytes}
}

// ListDates implements core.Source.
func (s *FS) ListDates(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := s.read(s.index)
	switch {
	case err == nil:
		return decodeIndex(body)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", s.index, err)
	}

	logging.FromContext(ctx).Debug("no index file, listing csv files", "index", s.index)

	matches, err := fs.Glob(s.fsys, "*.csv")
	if err != nil {
		return nil, fmt.Errorf("list csv files: %w", err)
	}
	dates := make([]string, 0, len(matches))
	for _, m := range matches {
		if d, ok := dateFromName(m); ok {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// FetchCSV implements core.Source.
func (s *FS) FetchCSV(ctx context.Context, date core.RaceDate) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := csvName(date.String())
	body, err := s.read(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return body, nil
}

func (s *FS) read(name string) ([]byte, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, s.maxBytes)
}
