package command

import (
	"sync"
	"time"
)

// CooldownTracker rate limits (command, caller) pairs. The check-and-set is
// atomic under one lock hold, so two dispatches racing on the same key can
// never both pass.
type CooldownTracker struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{last: make(map[string]time.Time)}
}

func cooldownKey(command, caller string) string {
	return command + "|" + caller
}

// TryAcquire allows the invocation and records now, or denies it with the
// remaining wait. A zero cooldown always allows and never records, so
// unthrottled commands occupy no tracker memory. The expiry boundary is
// inclusive: an invocation exactly cooldown after the last one is allowed.
func (t *CooldownTracker) TryAcquire(command, caller string, cooldown time.Duration, now time.Time) (bool, time.Duration) {
	if cooldown <= 0 {
		return true, 0
	}
	key := cooldownKey(command, caller)

	t.mu.Lock()
	defer t.mu.Unlock()

	if last, ok := t.last[key]; ok {
		if elapsed := now.Sub(last); elapsed < cooldown {
			return false, cooldown - elapsed
		}
	}
	t.last[key] = now
	return true, 0
}

// Prune drops entries older than maxAge. Entries are otherwise only
// overwritten, never deleted, so a periodic prune bounds memory.
func (t *CooldownTracker) Prune(maxAge time.Duration, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, last := range t.last {
		if now.Sub(last) > maxAge {
			delete(t.last, key)
		}
	}
}

// Len reports the number of live entries.
func (t *CooldownTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.last)
}
