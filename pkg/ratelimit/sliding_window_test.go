package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hykocx/grabsanta.hyko.dev/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(cfg Config) (*SlidingWindow, *clock.Fake) {
	clk := clock.NewFake(time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC))
	return New(cfg, clk), clk
}

func TestSlidingWindow_EleventhRequestRejected(t *testing.T) {
	l, clk := newTestLimiter(Config{})

	for i := 0; i < DefaultMaxRequests; i++ {
		ok, _ := l.Allow("203.0.113.7")
		require.True(t, ok, "request %d should be allowed", i+1)
		clk.Advance(time.Second)
	}

	ok, retryAfter := l.Allow("203.0.113.7")
	assert.False(t, ok)
	// First hit was 10s ago, so it leaves the 60s window in 50s.
	assert.Equal(t, 50*time.Second, retryAfter)
}

func TestSlidingWindow_ResumesAfterWindow(t *testing.T) {
	l, clk := newTestLimiter(Config{})

	for i := 0; i < DefaultMaxRequests; i++ {
		ok, _ := l.Allow("a")
		require.True(t, ok)
	}
	ok, _ := l.Allow("a")
	require.False(t, ok)

	clk.Advance(59 * time.Second)
	ok, _ = l.Allow("a")
	assert.False(t, ok, "still inside the window")

	clk.Advance(time.Second)
	ok, _ = l.Allow("a")
	assert.True(t, ok, "timestamps exactly one window old are pruned")
}

func TestSlidingWindow_RejectedRequestsDoNotConsumeBudget(t *testing.T) {
	l, clk := newTestLimiter(Config{MaxRequests: 2, Window: 10 * time.Second})

	l.Allow("a")
	clk.Advance(5 * time.Second)
	l.Allow("a")
	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("a")
		require.False(t, ok)
	}

	// Only the first allowed hit expires here; the rejections left no trace.
	clk.Advance(5 * time.Second)
	ok, _ := l.Allow("a")
	assert.True(t, ok)
}

func TestSlidingWindow_IdentifiersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Config{MaxRequests: 1})

	ok, _ := l.Allow("a")
	assert.True(t, ok)
	ok, _ = l.Allow("a")
	assert.False(t, ok)
	ok, _ = l.Allow("unknown")
	assert.True(t, ok)
}

func TestSlidingWindow_SweepDropsIdleIdentifiers(t *testing.T) {
	l, clk := newTestLimiter(Config{SweepThreshold: 3})

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("idle-%d", i))
	}
	assert.Equal(t, 3, l.Len(), "at the threshold nothing is swept")

	clk.Advance(2 * time.Minute)
	l.Allow("fresh-1")
	assert.Equal(t, 1, l.Len(), "crossing the threshold drops every emptied identifier")

	l.Allow("fresh-2")
	l.Allow("fresh-3")
	l.Allow("fresh-4")
	assert.Equal(t, 4, l.Len(), "identifiers with live timestamps survive a sweep")
}

func TestSlidingWindow_ConcurrentCallersNeverExceedBudget(t *testing.T) {
	l, _ := newTestLimiter(Config{MaxRequests: 10})

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("shared"); ok {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), allowed.Load())
}

func TestNew_Defaults(t *testing.T) {
	l := New(Config{}, nil)
	assert.Equal(t, DefaultWindow, l.window)
	assert.Equal(t, DefaultMaxRequests, l.max)
	assert.Equal(t, DefaultSweepThreshold, l.sweep)
	assert.IsType(t, clock.Real{}, l.clock)
}
