package ratelimit

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps event logs in process memory behind a single mutex.
// Keys whose newest event has left the window are evicted by a periodic
// sweep, so memory tracks recently active clients only.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry

	now             func() time.Time
	cleanupInterval time.Duration
	stop            chan struct{}
	done            chan struct{}
	closeOnce       sync.Once
}

type entry struct {
	timestamps []time.Time
	window     time.Duration
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often idle keys are swept. Zero or negative
// disables the background sweep; Sweep can still be called directly.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) { s.cleanupInterval = d }
}

// WithStoreClock sets the clock used by the background sweep.
func WithStoreClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates a store and starts its sweeper. Call Close to stop it.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries:         make(map[string]*entry),
		now:             time.Now,
		cleanupInterval: time.Minute,
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cleanupInterval > 0 {
		go s.sweepLoop()
	} else {
		close(s.done)
	}
	return s
}

func (s *MemoryStore) Record(_ context.Context, key string, now time.Time, window time.Duration, limit int) (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{timestamps: make([]time.Time, 0, limit)}
		s.entries[key] = e
	}
	e.window = window
	e.prune(now)

	w := Window{Count: len(e.timestamps)}
	if w.Count < limit {
		e.insert(now)
		w.Recorded = true
		w.Count++
	}
	if w.Count > 0 {
		w.Oldest = e.timestamps[0]
	} else {
		delete(s.entries, key)
	}
	return w, nil
}

func (s *MemoryStore) Count(_ context.Context, key string, now time.Time, window time.Duration) (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return Window{}, nil
	}
	e.window = window
	e.prune(now)
	if len(e.timestamps) == 0 {
		delete(s.entries, key)
		return Window{}, nil
	}
	return Window{Count: len(e.timestamps), Oldest: e.timestamps[0]}, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Sweep evicts keys with no event inside their window and returns how many
// were removed.
func (s *MemoryStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if len(e.timestamps) == 0 || !e.timestamps[len(e.timestamps)-1].After(now.Add(-e.window)) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the background sweep. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

func (s *MemoryStore) sweepLoop() {
	defer close(s.done)

	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stop:
			return
		}
	}
}

// insert adds ts keeping timestamps sorted. Callers read their clock before
// taking the lock, so concurrent calls may arrive out of order.
func (e *entry) insert(ts time.Time) {
	i := sort.Search(len(e.timestamps), func(i int) bool { return e.timestamps[i].After(ts) })
	e.timestamps = slices.Insert(e.timestamps, i, ts)
}

// prune drops timestamps at or before now-window. Timestamps are sorted, so
// the retained ones form a suffix.
func (e *entry) prune(now time.Time) {
	cutoff := now.Add(-e.window)
	i := 0
	for i < len(e.timestamps) && !e.timestamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		e.timestamps = append(e.timestamps[:0], e.timestamps[i:]...)
	}
}
