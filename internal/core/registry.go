package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// SourceConfig carries the settings a registered source may need.
// Each driver reads only the fields it cares about.
type SourceConfig struct {
	Dir          string        // fs: directory holding <date>.csv files
	IndexName    string        // fs, http: name of the JSON index file
	BaseURL      string        // http: base URL serving the index and files
	DatabaseURL  string        // postgres: connection string
	MaxConns     int32         // postgres: pool size
	MinConns     int32         // postgres: idle connections kept open
	FetchTimeout time.Duration // upper bound for one fetch
	MaxBytes     int64         // largest result file accepted
}

// SourceDriver opens a Source for one backend kind.
// A Source that holds resources also implements io.Closer.
type SourceDriver struct {
	Kind  string // "fs", "http", "postgres"
	Label string // Display name for logs
	Open  func(ctx context.Context, cfg SourceConfig) (Source, error)
}

var (
	registry   = make(map[string]SourceDriver)
	registryMu sync.RWMutex
)

// RegisterSource adds a source driver to the registry.
// Panics if a driver with the same kind is already registered.
func RegisterSource(d SourceDriver) {
	registryMu.Lock()
	defer registryMu.Unlock()

	kind := strings.ToLower(d.Kind)
	if _, exists := registry[kind]; exists {
		panic(fmt.Sprintf("source already registered: %s", kind))
	}
	if d.Label == "" {
		d.Label = kind
	}
	d.Kind = kind

	registry[kind] = d
}

// LookupSource returns a source driver by kind.
// Returns false if not found.
func LookupSource(kind string) (SourceDriver, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	d, ok := registry[strings.ToLower(kind)]
	return d, ok
}

// SourceKinds returns the registered kinds, sorted.
func SourceKinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// OpenSource opens the source registered under kind.
func OpenSource(ctx context.Context, kind string, cfg SourceConfig) (Source, error) {
	d, ok := LookupSource(kind)
	if !ok {
		return nil, fmt.Errorf("unknown source kind %q (registered: %s)", kind, strings.Join(SourceKinds(), ", "))
	}
	src, err := d.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", d.Label, err)
	}
	return src, nil
}

// ClearSources removes all registered drivers.
// Primarily useful for testing.
func ClearSources() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]SourceDriver)
}
