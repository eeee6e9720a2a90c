package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/JonMunkholm/utiming/internal/core"
	"github.com/JonMunkholm/utiming/internal/logging"
)

// UserAgent is sent with every upstream request.
const UserAgent = "utiming/1.0"

// DefaultHTTPTimeout bounds one upstream request.
const DefaultHTTPTimeout = 15 * time.Second

// HTTP reads races from a static mirror serving <base>/index.json and
// <base>/<date>.csv. Responses are never cached.
type HTTP struct {
	Client *http.Client

	base     *url.URL
	index    string
	maxBytes int64
}

// StatusError is returned for non-200 upstream responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// NewHTTP creates an HTTP source rooted at baseURL. Only http and https
// URLs are accepted.
func NewHTTP(baseURL, index string, timeout time.Duration, maxBytes int64) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", baseURL)
	}
	if index == "" {
		index = DefaultIndexName
	}
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &HTTP{
		Client:   &http.Client{Timeout: timeout},
		base:     u,
		index:    index,
		maxBytes: maxBytes,
	}, nil
}

// ListDates implements core.Source.
func (s *HTTP) ListDates(ctx context.Context) ([]string, error) {
	body, err := s.get(ctx, s.index)
	if err != nil {
		return nil, err
	}
	return decodeIndex(body)
}

// FetchCSV implements core.Source. A 404 maps to core.ErrNotFound.
func (s *HTTP) FetchCSV(ctx context.Context, date core.RaceDate) ([]byte, error) {
	return s.get(ctx, csvName(date.String()))
}

func (s *HTTP) get(ctx context.Context, name string) ([]byte, error) {
	target := s.base.JoinPath(name)
	// Query strings may carry tokens; keep them out of logs
	safeURL := target.Scheme + "://" + target.Host + target.Path
	log := logging.WithFields(ctx, "component", "http_source", "url", safeURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", safeURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", safeURL, core.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		log.Warn("upstream returned error status", "status", resp.StatusCode)
		return nil, &StatusError{URL: safeURL, Code: resp.StatusCode}
	}

	body, err := readLimited(resp.Body, s.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", safeURL, err)
	}

	log.Debug("upstream fetch complete",
		"size", humanize.Bytes(uint64(len(body))),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return body, nil
}
