// Package store keeps an in-memory mirror of the provider collection and
// refreshes it when the database signals a change. Reads (filtering, views,
// SSE pushes) are served from the mirror; the database stays the single
// source of truth.
package store

import (
	"sync"

	"zorgkaart/internal/directory"
)

// Snapshot is one immutable version of the full provider collection, in
// store order. Subscribers must not modify it.
type Snapshot struct {
	Providers []directory.Provider `json:"providers"`
}

// Mirror holds the latest snapshot and fans it out to subscribers. Each
// subscriber channel is buffered with capacity one; when a subscriber lags,
// the pending snapshot is replaced by the newer one rather than queued.
// Subscribers therefore always converge on the latest state but may skip
// intermediate versions.
type Mirror struct {
	mu      sync.Mutex
	current Snapshot
	nextID  int
	subs    map[int]chan Snapshot
}

// NewMirror returns an empty mirror.
func NewMirror() *Mirror {
	return &Mirror{
		current: Snapshot{Providers: []directory.Provider{}},
		subs:    map[int]chan Snapshot{},
	}
}

// Current returns the latest snapshot.
func (m *Mirror) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Replace installs a new snapshot and notifies every subscriber.
func (m *Mirror) Replace(providers []directory.Provider) {
	if providers == nil {
		providers = []directory.Provider{}
	}
	snap := Snapshot{Providers: providers}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = snap
	for _, ch := range m.subs {
		// drop the stale pending snapshot, if any, then push
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// Subscribe registers a subscriber and returns its channel together with a
// cancel function. The current snapshot is delivered immediately, so a new
// subscriber never waits for the next change to render.
func (m *Mirror) Subscribe() (<-chan Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan Snapshot, 1)
	ch <- m.current
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}
