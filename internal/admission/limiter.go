// Package admission implements the sliding-window rate limiter that gates
// how many operations per unit time may reach the ledger. It is constructed
// once at startup and injected into every caller that needs admission
// control (HTTP middleware today), rather than living in package-level maps.
package admission

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrTooManyRequests is returned when a key has exhausted its window budget.
var ErrTooManyRequests = errors.New("too many requests")

// entry tracks the timestamps of recently admitted calls for one key.
type entry struct {
	mu     sync.Mutex
	stamps []time.Time
}

// Limiter is a concurrency-safe keyed sliding-window counter. Only admitted
// calls are recorded, so a burst of rejected calls cannot extend a block.
type Limiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*entry

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// NewLimiter creates a limiter admitting up to limit calls per key per window.
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

// Admit records one call for key if it fits in the current window.
// Eviction of expired timestamps and the admission check happen atomically
// under the per-key lock, so concurrent callers sharing a key cannot be
// undercounted.
func (l *Limiter) Admit(key string) error {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	l.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)
	kept := e.stamps[:0]
	for _, t := range e.stamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	e.stamps = kept

	if len(e.stamps) >= l.limit {
		return ErrTooManyRequests
	}
	e.stamps = append(e.stamps, now)
	return nil
}

// StartPurge launches a background loop that removes keys with no admitted
// calls inside the window, so the map does not accumulate callers that never
// return. Stop shuts the loop down.
func (l *Limiter) StartPurge(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-l.stop:
				return
			case <-ticker.C:
				l.purge()
			}
		}
	}()
}

// Stop terminates the purge loop.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *Limiter) purge() {
	cutoff := l.now().Add(-l.window)
	purged := 0

	l.mu.Lock()
	for key, e := range l.entries {
		e.mu.Lock()
		idle := len(e.stamps) == 0 || !e.stamps[len(e.stamps)-1].After(cutoff)
		e.mu.Unlock()
		if idle {
			delete(l.entries, key)
			purged++
		}
	}
	remaining := len(l.entries)
	l.mu.Unlock()

	if purged > 0 {
		log.Debug().
			Int("purged", purged).
			Int("remaining", remaining).
			Msg("admission: idle keys purged")
	}
}
