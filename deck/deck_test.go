package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullDeckCount = 52

func TestDeck(t *testing.T) {
	t.Run("new deck holds every card once", func(t *testing.T) {
		d := New()
		require.Len(t, d, fullDeckCount)

		seen := map[Card]struct{}{}
		for _, c := range d {
			seen[c] = struct{}{}
		}
		assert.Len(t, seen, fullDeckCount)
	})

	t.Run("canonical order is rank-major", func(t *testing.T) {
		d := New()
		assert.Equal(t, NewCard(Two, Clubs), d[0])
		assert.Equal(t, NewCard(Two, Spades), d[3])
		assert.Equal(t, NewCard(Three, Clubs), d[4])
		assert.Equal(t, NewCard(Ace, Spades), d[51])
	})

	t.Run("shuffle is a permutation", func(t *testing.T) {
		d := New()
		d.Shuffle(rand.New(rand.NewSource(7)))

		assert.Len(t, d, fullDeckCount)
		assert.ElementsMatch(t, New(), d)
		assert.NotEqual(t, New(), d)
	})

	t.Run("shuffle with the same seed is repeatable", func(t *testing.T) {
		a, b := New(), New()
		a.Shuffle(rand.New(rand.NewSource(42)))
		b.Shuffle(rand.New(rand.NewSource(42)))
		assert.Equal(t, a, b)
	})

	t.Run("deal takes from the end", func(t *testing.T) {
		d := New()
		dealt := d.Deal(3)

		assert.Equal(t, []Card{NewCard(Ace, Diamonds), NewCard(Ace, Hearts), NewCard(Ace, Spades)}, dealt)
		assert.Len(t, d, 49)
		assert.Empty(t, d.Deal(50))
		assert.Empty(t, d.Deal(-1))
	})
}

func TestDraw(t *testing.T) {
	t.Run("draws the last card", func(t *testing.T) {
		d := Deck{NewCard(Two, Clubs), NewCard(Nine, Hearts)}
		pile := Pile{NewCard(Five, Spades)}

		c, err := d.Draw(&pile)
		require.NoError(t, err)
		assert.Equal(t, NewCard(Nine, Hearts), c)
		assert.Equal(t, Deck{NewCard(Two, Clubs)}, d)
		assert.Len(t, pile, 1)
	})

	t.Run("drawing the last card recycles the discard pile", func(t *testing.T) {
		d := Deck{NewCard(King, Clubs)}
		pile := Pile{
			NewCard(Five, Clubs),
			NewCard(Six, Clubs),
			NewCard(Seven, Clubs),
			NewCard(Eight, Clubs),
			NewCard(Nine, Clubs), // top
		}

		c, err := d.Draw(&pile)
		require.NoError(t, err)
		assert.Equal(t, NewCard(King, Clubs), c)

		assert.Equal(t, Deck{
			NewCard(Eight, Clubs),
			NewCard(Seven, Clubs),
			NewCard(Six, Clubs),
			NewCard(Five, Clubs),
		}, d)
		assert.Equal(t, Pile{NewCard(Nine, Clubs)}, pile)
		assert.Equal(t, 6, len(d)+len(pile)+1)
	})

	t.Run("next draw after recycling comes from the old bottom of the pile", func(t *testing.T) {
		d := Deck{NewCard(King, Clubs)}
		pile := Pile{NewCard(Five, Clubs), NewCard(Six, Clubs), NewCard(Nine, Clubs)}

		_, err := d.Draw(&pile)
		require.NoError(t, err)

		c, err := d.Draw(&pile)
		require.NoError(t, err)
		assert.Equal(t, NewCard(Five, Clubs), c)
	})

	t.Run("exhausted deck and pile", func(t *testing.T) {
		d := Deck{}
		pile := Pile{NewCard(Nine, Clubs)}

		_, err := d.Draw(&pile)
		assert.ErrorIs(t, err, ErrEmptyDeck)
		assert.Equal(t, Pile{NewCard(Nine, Clubs)}, pile)
	})

	t.Run("empty deck is refilled before drawing", func(t *testing.T) {
		d := Deck{}
		pile := Pile{NewCard(Five, Clubs), NewCard(Nine, Clubs)}

		c, err := d.Draw(&pile)
		require.NoError(t, err)
		assert.Equal(t, NewCard(Five, Clubs), c)
		assert.Empty(t, d)
		assert.Equal(t, Pile{NewCard(Nine, Clubs)}, pile)
	})
}

func TestPile(t *testing.T) {
	var p Pile
	_, ok := p.Top()
	assert.False(t, ok)

	p.Push(NewCard(Two, Hearts), NewCard(Jack, Hearts))
	top, ok := p.Top()
	assert.True(t, ok)
	assert.Equal(t, NewCard(Jack, Hearts), top)
}
