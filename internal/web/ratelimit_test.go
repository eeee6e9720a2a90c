package web

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, rate int) (*rateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(rate, time.Minute)
	rl.now = clock.Now
	t.Cleanup(rl.stop)
	return rl, clock
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, clock := newTestLimiter(t, 3)

	for i := range 3 {
		assert.True(t, rl.allow("1.1.1.1"), "request %d", i+1)
	}
	assert.False(t, rl.allow("1.1.1.1"))
	assert.True(t, rl.allow("2.2.2.2"), "other clients have their own budget")

	clock.Advance(time.Minute + time.Second)
	assert.True(t, rl.allow("1.1.1.1"), "budget resets after the window")
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl, clock := newTestLimiter(t, 1)
	rl.allow("1.1.1.1")
	clock.Advance(time.Minute)
	rl.allow("2.2.2.2")

	clock.Advance(90 * time.Second)
	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "1.1.1.1")
	assert.Contains(t, rl.visitors, "2.2.2.2")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	rl.stop()
	assert.NotPanics(t, rl.stop)
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 1)

	var limited []int
	h := rl.middleware(func(w http.ResponseWriter, r *http.Request, err error, status int) {
		assert.ErrorIs(t, err, errRateLimited)
		limited = append(limited, status)
		w.WriteHeader(status)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/races", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, serve("10.0.0.1:1000").Code)
	// same host, different port
	rec := serve("10.0.0.1:2000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusNoContent, serve("10.0.0.2:1000").Code)
	assert.Equal(t, []int{http.StatusTooManyRequests}, limited)
}
