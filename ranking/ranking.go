// Package ranking keeps the cumulative scores of every player across games.
//
// A Ranking is created once per process and shared by every table. Scores are
// read from a Store the first time they are needed and written back wholesale
// whenever a game ends.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

const leaderboardSize = 3

var (
	ErrUnavailable   = errors.New("leaderboard not available")
	ErrUnknownPlayer = errors.New("unknown player")
)

// Store is the durable home of the ranking table.
type Store interface {
	Load(ctx context.Context) (map[string]int, error)
	Save(ctx context.Context, scores map[string]int) error
}

// Entry is one line of the leaderboard
type Entry struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
}

type Ranking struct {
	mu     sync.Mutex
	store  Store
	scores map[string]int
	loaded bool
	log    logrus.FieldLogger
}

// New constructs a Ranking backed by store. Nothing is read until first use.
func New(store Store, logger logrus.FieldLogger) *Ranking {
	if store == nil {
		store = NewMemoryStore(nil)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Ranking{
		store:  store,
		scores: map[string]int{},
		log:    logger.WithField("component", "ranking"),
	}
}

// Load reads the stored scores once. Points credited before the first load
// are kept and added on top of the stored ones.
func (r *Ranking) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *Ranking) load(ctx context.Context) error {
	if r.loaded {
		return nil
	}

	stored, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading ranking: %w", err)
	}
	for player, score := range stored {
		r.scores[player] += score
	}
	r.loaded = true

	r.log.WithField("players", len(stored)).Debug("ranking loaded")
	return nil
}

// Credit adds points to a player's score
func (r *Ranking) Credit(player string, points int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scores[player] += points
}

// Flush rewrites the store with the whole ranking table.
func (r *Ranking) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return err
	}

	snapshot := make(map[string]int, len(r.scores))
	for player, score := range r.scores {
		snapshot[player] = score
	}

	if err := r.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("saving ranking: %w", err)
	}

	r.log.WithField("players", len(snapshot)).Info("ranking flushed")
	return nil
}

func (r *Ranking) score(player string) (int, bool) {
	score, ok := r.scores[player]
	return score, ok
}

// top returns up to n entries, highest score first. Ties are ordered by name.
func (r *Ranking) top(n int) []Entry {
	entries := make([]Entry, 0, len(r.scores))
	for player, score := range r.scores {
		entries = append(entries, Entry{Player: player, Score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Player < entries[j].Player
	})

	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Leaderboard answers a ranking query: the podium when player is empty,
// otherwise that single player's entry.
func (r *Ranking) Leaderboard(ctx context.Context, player string) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return nil, err
	}

	if player != "" {
		score, ok := r.score(player)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, player)
		}
		return []Entry{{Player: player, Score: score}}, nil
	}

	if len(r.scores) < leaderboardSize {
		return nil, ErrUnavailable
	}
	return r.top(leaderboardSize), nil
}
