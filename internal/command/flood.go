package command

import (
	"sync"

	"golang.org/x/time/rate"
)

// FloodGate applies a global per-caller rate limit ahead of per-command
// cooldowns, so one user hammering many different commands is still slowed
// down.
type FloodGate struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewFloodGate allows r invocations per second with the given burst per
// caller.
func NewFloodGate(r float64, burst int) *FloodGate {
	if r <= 0 {
		r = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &FloodGate{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(r),
		burst:    burst,
	}
}

// Allow reports whether caller may dispatch right now.
func (f *FloodGate) Allow(caller string) bool {
	f.mu.Lock()
	lim, ok := f.limiters[caller]
	if !ok {
		lim = rate.NewLimiter(f.rate, f.burst)
		f.limiters[caller] = lim
	}
	f.mu.Unlock()
	return lim.Allow()
}

// Forget drops a caller's limiter state.
func (f *FloodGate) Forget(caller string) {
	f.mu.Lock()
	delete(f.limiters, caller)
	f.mu.Unlock()
}
