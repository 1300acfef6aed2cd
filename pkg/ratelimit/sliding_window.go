// Package ratelimit implements a per-identifier sliding-window request log.
package ratelimit

import (
	"sync"
	"time"

	"github.com/hykocx/grabsanta.hyko.dev/pkg/clock"
)

const (
	DefaultWindow         = time.Minute
	DefaultMaxRequests    = 10
	DefaultSweepThreshold = 1000
)

// Config controls a SlidingWindow. Zero fields fall back to the defaults.
type Config struct {
	Window         time.Duration
	MaxRequests    int
	SweepThreshold int
}

// SlidingWindow keeps, for every identifier, the timestamps of the requests it
// allowed within the last Window. All updates for an identifier happen under a
// single lock, so concurrent callers can never undercount.
type SlidingWindow struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	window time.Duration
	max    int
	sweep  int
	clock  clock.Clock
}

// New creates a SlidingWindow. A nil clock means the wall clock.
func New(cfg Config, clk clock.Clock) *SlidingWindow {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = DefaultMaxRequests
	}
	if cfg.SweepThreshold <= 0 {
		cfg.SweepThreshold = DefaultSweepThreshold
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &SlidingWindow{
		hits:   make(map[string][]time.Time),
		window: cfg.Window,
		max:    cfg.MaxRequests,
		sweep:  cfg.SweepThreshold,
		clock:  clk,
	}
}

// Allow records a request for key if the key still has budget in the current
// window. When the budget is spent it returns false together with the time
// until the oldest recorded request leaves the window.
func (l *SlidingWindow) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	recent := l.prune(l.hits[key], now)

	if len(recent) >= l.max {
		l.hits[key] = recent
		return false, l.window - now.Sub(recent[0])
	}

	l.hits[key] = append(recent, now)

	if len(l.hits) > l.sweep {
		for k, ts := range l.hits {
			kept := l.prune(ts, now)
			if len(kept) == 0 {
				delete(l.hits, k)
				continue
			}
			l.hits[k] = kept
		}
	}

	return true, 0
}

// Len reports how many identifiers are currently tracked.
func (l *SlidingWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}

// prune drops timestamps that are no longer strictly inside the window.
// Timestamps are appended in order, so the survivors are a suffix.
func (l *SlidingWindow) prune(ts []time.Time, now time.Time) []time.Time {
	i := 0
	for i < len(ts) && now.Sub(ts[i]) >= l.window {
		i++
	}
	if i == 0 {
		return ts
	}
	kept := make([]time.Time, len(ts)-i)
	copy(kept, ts[i:])
	return kept
}
