package ranking

import (
	"context"
	"sync"
)

// MemoryStore is a Store that lives as long as the process.
type MemoryStore struct {
	mu     sync.Mutex
	scores map[string]int
	saves  int
}

func NewMemoryStore(initial map[string]int) *MemoryStore {
	s := &MemoryStore{scores: map[string]int{}}
	for p, score := range initial {
		s.scores[p] = score
	}
	return s
}

func (s *MemoryStore) Load(_ context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyScores(s.scores), nil
}

func (s *MemoryStore) Save(_ context.Context, scores map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores = copyScores(scores)
	s.saves++
	return nil
}

// Saves reports how many times the ranking was written.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saves
}

func copyScores(scores map[string]int) map[string]int {
	out := make(map[string]int, len(scores))
	for p, score := range scores {
		out[p] = score
	}
	return out
}
