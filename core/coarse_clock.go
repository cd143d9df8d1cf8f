package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock supplies the wall-clock time stamped into prefixes
type Clock func() time.Time

// SystemClock reads time.Now on every call
var SystemClock Clock = time.Now

var (
	coarseClockOnce sync.Once
	coarseNow       atomic.Pointer[time.Time]
)

// StartCoarseClock starts the background goroutine that caches
// time.Now() every 500µs. It is safe to call multiple times; the
// goroutine is started exactly once and runs for the lifetime of the
// process.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		coarseNow.Store(&t)
		go func() {
			ticker := time.NewTicker(500 * time.Microsecond)
			for range ticker.C {
				t := time.Now()
				coarseNow.Store(&t)
			}
		}()
	})
}

// CoarseNow returns the most recently cached time.Time value.
// It falls back to time.Now if StartCoarseClock was never called.
func CoarseNow() time.Time {
	if t := coarseNow.Load(); t != nil {
		return *t
	}
	return time.Now()
}

// CoarseClock starts the cached clock and returns it as a Clock.
// Microsecond fields rendered from it are only accurate to ~500µs.
func CoarseClock() Clock {
	StartCoarseClock()
	return CoarseNow
}
