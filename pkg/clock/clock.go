package clock

import (
	"sync"
	"time"
)

// Clock reports the current time. Components that window or bucket by time
// take a Clock so tests can drive time explicitly.
type Clock interface {
	Now() time.Time
}

// Real is the wall clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fake is a manually driven Clock. The zero value starts at the zero time;
// use NewFake to anchor it.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake anchored at t. If t is the zero value, the current
// real UTC time is used.
func NewFake(t time.Time) *Fake {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return &Fake{now: t}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set moves the clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time.
func (f *Fake) Advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	return f.now
}
