// Package runstore keeps completed runs in memory so API clients can fetch
// results again by id. Runs are immutable once stored and expire after a TTL;
// this is a convenience cache, not durable storage.
package runstore

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind labels what produced a stored run.
type Kind string

const (
	KindSelect   Kind = "select"
	KindOptimize Kind = "optimize"
	KindCompare  Kind = "compare"
	KindSweep    Kind = "sweep"
	KindPareto   Kind = "pareto"
	KindDominate Kind = "dominate"
	KindClaim    Kind = "claim"
)

// Run is one stored result. Result holds the handler's response payload
// verbatim, so a replayed GET returns exactly what the original call did.
type Run struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	Result    any       `json:"result"`
}

type entry struct {
	run       Run
	expiresAt time.Time
}

// Store is an in-memory, TTL-bounded run archive.
type Store struct {
	mu    sync.RWMutex
	runs  map[string]entry
	ttl   time.Duration
	close chan struct{}
	once  sync.Once
}

// New builds a store and starts its cleanup goroutine. Close releases it.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	s := &Store{
		runs:  make(map[string]entry),
		ttl:   ttl,
		close: make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// Put archives a result and returns its generated run id.
func (s *Store) Put(kind Kind, result any) Run {
	run := Run{
		ID:        uuid.New().String(),
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
		Result:    result,
	}
	s.mu.Lock()
	s.runs[run.ID] = entry{run: run, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return run
}

// Get retrieves a run if present and not expired.
func (s *Store) Get(id string) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.runs[id]
	if !ok || time.Now().After(e.expiresAt) {
		return Run{}, false
	}
	return e.run, true
}

// Len reports the number of live entries, expired ones included until the
// next cleanup tick.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *Store) Close() {
	s.once.Do(func() { close(s.close) })
}

// cleanup periodically removes expired entries.
func (s *Store) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.close:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for id, e := range s.runs {
				if now.After(e.expiresAt) {
					delete(s.runs, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
