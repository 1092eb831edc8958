package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/makao/deck"
)

func TestHandsTake(t *testing.T) {
	fresh := func() hands {
		h := hands{}
		h.add("p1")
		h.give("p1",
			card(deck.Two, deck.Clubs),
			card(deck.Nine, deck.Hearts),
			card(deck.Nine, deck.Spades),
			card(deck.Ace, deck.Diamonds),
		)
		return h
	}

	t.Run("takes the selected slots in selection order", func(t *testing.T) {
		h := fresh()

		got, err := h.take("p1", []int{2, 1})
		require.NoError(t, err)

		assert.Equal(t, cards(card(deck.Nine, deck.Spades), card(deck.Nine, deck.Hearts)), got)
		assert.Equal(t, cards(card(deck.Two, deck.Clubs), card(deck.Ace, deck.Diamonds)), h.hand("p1"))
	})

	t.Run("equal looking cards are told apart by slot", func(t *testing.T) {
		h := hands{}
		h.add("p1")
		h.give("p1", card(deck.Five, deck.Clubs), card(deck.Five, deck.Clubs))

		_, err := h.take("p1", []int{1})
		require.NoError(t, err)
		assert.Equal(t, 1, h.count("p1"))
	})

	for name, indices := range map[string][]int{
		"empty selection": {},
		"out of range":    {4},
		"negative":        {-1},
		"duplicates":      {1, 1},
	} {
		t.Run(name, func(t *testing.T) {
			h := fresh()

			_, err := h.take("p1", indices)

			assert.ErrorIs(t, err, ErrInvalidSelection)
			assert.Equal(t, 4, h.count("p1"))
		})
	}
}

func TestHandsCopy(t *testing.T) {
	h := hands{}
	h.add("p1")
	h.give("p1", card(deck.Two, deck.Clubs))

	got := h.hand("p1")
	got[0] = card(deck.Ace, deck.Spades)

	assert.Equal(t, card(deck.Two, deck.Clubs), h["p1"][0])

	left := h.remove("p1")
	assert.Len(t, left, 1)
	assert.False(t, h.has("p1"))
}
