package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type windowState struct {
	count   int64
	resetAt time.Time
}

type MemoryStore struct {
	mu        sync.Mutex
	windows   map[string]*windowState
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*windowState),
		now:     time.Now,
	}
}

func (m *MemoryStore) Take(_ context.Context, key string, n, limit int64, window time.Duration) (int64, time.Duration, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &windowState{resetAt: now.Add(window)}
		m.windows[key] = w
	}

	if w.count+n > limit {
		return w.count, w.resetAt.Sub(now), false, nil
	}
	w.count += n

	return w.count, w.resetAt.Sub(now), true, nil
}

// sweep drops expired windows at most once a minute.
func (m *MemoryStore) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < time.Minute {
		return
	}
	m.lastSweep = now

	for key, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, key)
		}
	}
}
