// Package session holds short-lived per-(caller, conversation) state for
// commands that span multiple messages, such as games. Each feature owns its
// own Store instance and passes it where needed; there is no ambient global
// state.
package session

import (
	"sync"
	"time"
)

// Key builds the composite key scoping state to one caller in one chat.
func Key(caller, chat string) string {
	return caller + "|" + chat
}

type entry[T any] struct {
	value    T
	expireAt time.Time
}

// Store is a TTL map guarded by one mutex. The zero value is not usable,
// construct with New.
type Store[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[T]
}

func New[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{ttl: ttl, entries: make(map[string]entry[T])}
}

func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if time.Now().After(e.expireAt) {
		delete(s.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

func (s *Store[T]) Put(key string, value T) {
	s.mu.Lock()
	s.entries[key] = entry[T]{value: value, expireAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Update atomically applies fn to the current value (zero value when absent)
// and stores the result, refreshing the TTL.
func (s *Store[T]) Update(key string, fn func(value T, ok bool) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if ok && time.Now().After(e.expireAt) {
		ok = false
	}
	var cur T
	if ok {
		cur = e.value
	}
	next := fn(cur, ok)
	s.entries[key] = entry[T]{value: next, expireAt: time.Now().Add(s.ttl)}
	return next
}

// Prune drops expired entries.
func (s *Store[T]) Prune() {
	now := time.Now()
	s.mu.Lock()
	for key, e := range s.entries {
		if now.After(e.expireAt) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
