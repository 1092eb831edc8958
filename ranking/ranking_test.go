package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct {
	loadErr, saveErr error
}

func (s brokenStore) Load(context.Context) (map[string]int, error) { return nil, s.loadErr }
func (s brokenStore) Save(context.Context, map[string]int) error { return s.saveErr }

func quietLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestRankingLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("credits made before loading are kept", func(t *testing.T) {
		store := NewMemoryStore(map[string]int{"ada": 4})
		r := New(store, quietLogger())

		r.Credit("ada", 2)
		r.Credit("grace", 1)
		require.NoError(t, r.Load(ctx))

		score, ok := r.score("ada")
		assert.True(t, ok)
		assert.Equal(t, 6, score)
	})

	t.Run("loads only once", func(t *testing.T) {
		store := NewMemoryStore(map[string]int{"ada": 4})
		r := New(store, quietLogger())

		require.NoError(t, r.Load(ctx))
		require.NoError(t, r.Load(ctx))

		score, _ := r.score("ada")
		assert.Equal(t, 4, score)
	})

	t.Run("load failure is reported", func(t *testing.T) {
		boom := errors.New("boom")
		r := New(brokenStore{loadErr: boom}, quietLogger())

		assert.ErrorIs(t, r.Load(ctx), boom)
		assert.ErrorIs(t, r.Flush(ctx), boom)
	})
}

func TestRankingFlush(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(map[string]int{"ada": 4, "hedy": 1})
	r := New(store, quietLogger())

	r.Credit("ada", 2)
	r.Credit("grace", 3)
	require.NoError(t, r.Flush(ctx))

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ada": 6, "grace": 3, "hedy": 1}, saved)
	assert.Equal(t, 1, store.Saves())

	t.Run("save failure is reported", func(t *testing.T) {
		boom := errors.New("disk full")
		r := New(brokenStore{saveErr: boom}, quietLogger())
		assert.ErrorIs(t, r.Flush(ctx), boom)
	})
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("needs at least three players", func(t *testing.T) {
		r := New(NewMemoryStore(map[string]int{"ada": 1, "grace": 2}), quietLogger())
		_, err := r.Leaderboard(ctx, "")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("top three by score, ties by name", func(t *testing.T) {
		r := New(NewMemoryStore(map[string]int{
			"ada": 5, "grace": 9, "hedy": 5, "katherine": 1,
		}), quietLogger())

		got, err := r.Leaderboard(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []Entry{
			{Player: "grace", Score: 9},
			{Player: "ada", Score: 5},
			{Player: "hedy", Score: 5},
		}, got)
	})

	t.Run("single player", func(t *testing.T) {
		r := New(NewMemoryStore(map[string]int{"ada": 5}), quietLogger())

		got, err := r.Leaderboard(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, []Entry{{Player: "ada", Score: 5}}, got)

		_, err = r.Leaderboard(ctx, "marlyn")
		assert.ErrorIs(t, err, ErrUnknownPlayer)
	})

	t.Run("top never returns more than asked", func(t *testing.T) {
		r := New(NewMemoryStore(map[string]int{"ada": 5, "grace": 2}), quietLogger())
		require.NoError(t, r.Load(ctx))
		assert.Len(t, r.top(1), 1)
		assert.Len(t, r.top(10), 2)
	})
}
