// Package source provides the read-only race backends: a directory of CSV
// files, an HTTP mirror and a PostgreSQL table.
//
// Importing the package registers every backend with core.RegisterSource.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// DefaultIndexName is the index file read by the fs and http sources.
const DefaultIndexName = "index.json"

// DefaultMaxBytes caps the size of one result file.
const DefaultMaxBytes int64 = 10 << 20

// ErrTooLarge is returned when a file exceeds the configured size limit.
var ErrTooLarge = errors.New("race file too large")

// readLimited reads r up to max bytes and fails when there is more.
func readLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > max {
		return nil, fmt.Errorf("%w: over %s", ErrTooLarge, humanize.Bytes(uint64(max)))
	}
	return body, nil
}

// decodeIndex reads a JSON array of date strings.
func decodeIndex(body []byte) ([]string, error) {
	var dates []string
	if err := json.Unmarshal(body, &dates); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return dates, nil
}

func csvName(date string) string {
	return date + ".csv"
}

func dateFromName(name string) (string, bool) {
	return strings.CutSuffix(name, ".csv")
}
