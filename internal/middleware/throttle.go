package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RemoteIP returns the peer address without its port. The agent only
// listens on loopback, so forwarding headers are not trusted.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Throttle admits at most one call per key within a minimum gap.
type Throttle struct {
	mu   sync.Mutex
	gap  time.Duration
	last map[string]time.Time
	now  func() time.Time
}

func NewThrottle(gap time.Duration) *Throttle {
	return &Throttle{
		gap:  gap,
		last: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Allow reports whether key may proceed and, if not, how long to wait.
func (t *Throttle) Allow(key string) (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if prev, ok := t.last[key]; ok {
		if wait := t.gap - now.Sub(prev); wait > 0 {
			return false, wait
		}
	}
	t.last[key] = now
	return true, 0
}

// Limit rejects requests that arrive too soon after the previous one from
// the same address with 429 and a Retry-After header.
func (t *Throttle) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := t.Allow(RemoteIP(r))
		if !ok {
			secs := int(wait.Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
