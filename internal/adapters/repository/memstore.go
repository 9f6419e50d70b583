package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemStore implements Store with an in-memory sorted index. A rebuild
// swaps the whole index under a write lock; reads share an RWMutex, so
// concurrent queries never observe a partially built ranking.
type MemStore struct {
	mu      sync.RWMutex
	ranked  []Entry          // sorted by value desc, rank ascending
	byID    map[string]Entry // playerID -> ranked entry
}

// NewMemStore creates an empty in-memory ranking store.
func NewMemStore(_ context.Context) *MemStore {
	return &MemStore{
		byID: make(map[string]Entry),
	}
}

// Rebuild replaces the ranking with the given entries. Ties on value are
// broken by player id so rebuilds are deterministic.
func (s *MemStore) Rebuild(_ context.Context, entries []Entry) error {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].PlayerID < ranked[j].PlayerID
	})

	byID := make(map[string]Entry, len(ranked))
	for i := range ranked {
		ranked[i].Rank = i + 1
		if _, dup := byID[ranked[i].PlayerID]; dup {
			return fmt.Errorf("duplicate player id %s in ranking rebuild", ranked[i].PlayerID)
		}
		byID[ranked[i].PlayerID] = ranked[i]
	}

	s.mu.Lock()
	s.ranked = ranked
	s.byID = byID
	s.mu.Unlock()

	return nil
}

// Rank returns the ranked entry for a player.
func (s *MemStore) Rank(_ context.Context, playerID string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.byID[playerID]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, playerID)
	}
	return entry, nil
}

// TopN returns the top-N entries by value descending.
func (s *MemStore) TopN(_ context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.ranked) {
		n = len(s.ranked)
	}
	out := make([]Entry, n)
	copy(out, s.ranked[:n])
	return out, nil
}

// Count returns the number of ranked players.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ranked)
}
