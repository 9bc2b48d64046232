// Package store holds discovered matches. It is append-only for the
// duration of a run: concurrent workers insert, then a single reader (the
// collector) drains it after every writer has finished.
package store

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateKey reports an insert under a key already present. Keys are
// derived from worker identity plus a per-worker sequence number, so a
// collision means a bookkeeping bug, not a data race.
var ErrDuplicateKey = errors.New("store: duplicate result key")

// Match is one successful digest comparison. Immutable once created.
type Match struct {
	WorkerID  int
	Original  string
	Hash      string
	Algorithm string
	Sequence  int // per-worker discovery sequence, starting at 1
}

// Key derives the globally unique store key for a worker's nth match.
func Key(workerID, sequence int) string {
	return fmt.Sprintf("match_%d_%d", workerID, sequence)
}

// Store is a concurrent insert-if-absent map of matches. No update or
// delete operations exist during a run.
type Store struct {
	mu sync.Mutex
	m  map[string]Match
}

// New returns an empty Store.
func New() *Store {
	return &Store{m: make(map[string]Match)}
}

// Insert atomically adds a match under key, failing if the key exists.
func (s *Store) Insert(key string, m Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	s.m[key] = m
	return nil
}

// Len returns the number of stored matches.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Snapshot copies the current contents. The collector calls this once,
// after the pool has terminated; calling it earlier risks observing a
// partial result set.
func (s *Store) Snapshot() map[string]Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Match, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out
}
