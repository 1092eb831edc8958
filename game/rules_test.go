package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minaorangina/makao/deck"
)

func card(r deck.Rank, s deck.Suit) deck.Card {
	return deck.NewCard(r, s)
}

func cards(cs ...deck.Card) []deck.Card {
	return cs
}

func TestIsValidPlacement(t *testing.T) {
	plain := Table{Top: card(deck.Nine, deck.Hearts), SuitRequested: deck.NullSuit}

	type testCase struct {
		name  string
		play  []deck.Card
		table Table
		want  bool
	}

	testCases := []testCase{
		{
			name:  "nothing to place",
			play:  cards(),
			table: plain,
			want:  false,
		},
		{
			name:  "same suit",
			play:  cards(card(deck.King, deck.Hearts)),
			table: plain,
			want:  true,
		},
		{
			name:  "same rank",
			play:  cards(card(deck.Nine, deck.Clubs)),
			table: plain,
			want:  true,
		},
		{
			name:  "neither rank nor suit match",
			play:  cards(card(deck.King, deck.Clubs)),
			table: plain,
			want:  false,
		},
		{
			name:  "same rank batch led by a matching card",
			play:  cards(card(deck.Nine, deck.Clubs), card(deck.Nine, deck.Spades)),
			table: plain,
			want:  true,
		},
		{
			name:  "mixed ranks are never a batch",
			play:  cards(card(deck.King, deck.Hearts), card(deck.Queen, deck.Hearts)),
			table: plain,
			want:  false,
		},
		{
			name:  "batch is judged by its first card",
			play:  cards(card(deck.King, deck.Clubs), card(deck.King, deck.Hearts)),
			table: plain,
			want:  false,
		},
		{
			name:  "Ace goes on anything",
			play:  cards(card(deck.Ace, deck.Clubs)),
			table: plain,
			want:  true,
		},
		{
			name:  "anything goes on a Four without penalty",
			play:  cards(card(deck.Jack, deck.Clubs)),
			table: Table{Top: card(deck.Four, deck.Hearts), SuitRequested: deck.NullSuit},
			want:  true,
		},
		{
			name:  "anything goes on a spent Two",
			play:  cards(card(deck.Jack, deck.Clubs)),
			table: Table{Top: card(deck.Two, deck.Hearts), SuitRequested: deck.NullSuit},
			want:  true,
		},
		{
			name:  "anything goes when any suit was requested",
			play:  cards(card(deck.Jack, deck.Clubs)),
			table: Table{Top: card(deck.Ace, deck.Hearts), SuitRequested: deck.AnySuit},
			want:  true,
		},
		{
			name:  "requested suit is followed",
			play:  cards(card(deck.Jack, deck.Clubs)),
			table: Table{Top: card(deck.Ace, deck.Hearts), SuitRequested: deck.Clubs},
			want:  true,
		},
		{
			name:  "requested suit beats the top card's suit",
			play:  cards(card(deck.Jack, deck.Hearts)),
			table: Table{Top: card(deck.Ace, deck.Hearts), SuitRequested: deck.Clubs},
			want:  false,
		},
		{
			name:  "Ace answers a suit request",
			play:  cards(card(deck.Ace, deck.Spades)),
			table: Table{Top: card(deck.Ace, deck.Hearts), SuitRequested: deck.Clubs},
			want:  true,
		},
		{
			name:  "Seven stops a draw penalty",
			play:  cards(card(deck.Seven, deck.Spades)),
			table: Table{Top: card(deck.Three, deck.Hearts), SuitRequested: deck.NullSuit, Penalty: 3},
			want:  true,
		},
		{
			name:  "Seven stops a stay penalty",
			play:  cards(card(deck.Seven, deck.Spades), card(deck.Seven, deck.Clubs)),
			table: Table{Top: card(deck.Four, deck.Hearts), SuitRequested: deck.NullSuit, Penalty: 1},
			want:  true,
		},
		{
			name:  "Sevens still have to share a rank",
			play:  cards(card(deck.Seven, deck.Spades), card(deck.Eight, deck.Spades)),
			table: Table{Top: card(deck.Three, deck.Hearts), SuitRequested: deck.NullSuit, Penalty: 3},
			want:  false,
		},
		{
			name:  "Two extends a Three of the same suit",
			play:  cards(card(deck.Two, deck.Hearts)),
			table: Table{Top: card(deck.Three, deck.Hearts), SuitRequested: deck.NullSuit, Penalty: 3},
			want:  true,
		},
		{
			name:  "Three extends a Three",
			play:  cards(card(deck.Three, deck.Clubs)),
			table: Table{Top: card(deck.Three, deck.Hearts), SuitRequested: deck.NullSuit, Penalty: 3},
			want:  true,
		},
		{
			name:  "extending a chain still needs rank or suit",
			play:  cards(card(deck.Two, deck.Clubs)),
			table: Table{Top: card(deck.Three, deck.Hearts), SuitRequested: deck.NullSuit, Penalty: 3},
			want:  false,
		},
		{
			name:  "only Twos and Threes go on a draw penalty",
			play:  cards(card(deck.King, deck.Hearts)),
			table: Table{Top: card(deck.Three, deck.Hearts), SuitRequested: deck.NullSuit, Penalty: 3},
			want:  false,
		},
		{
			name:  "Ace does not stop a draw penalty",
			play:  cards(card(deck.Ace, deck.Hearts)),
			table: Table{Top: card(deck.Three, deck.Hearts), SuitRequested: deck.NullSuit, Penalty: 3},
			want:  false,
		},
		{
			name:  "Four extends a stay penalty",
			play:  cards(card(deck.Four, deck.Clubs)),
			table: Table{Top: card(deck.Four, deck.Hearts), SuitRequested: deck.NullSuit, Penalty: 1},
			want:  true,
		},
		{
			name:  "only Fours go on a stay penalty",
			play:  cards(card(deck.Five, deck.Hearts)),
			table: Table{Top: card(deck.Four, deck.Hearts), SuitRequested: deck.NullSuit, Penalty: 1},
			want:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidPlacement(tc.play, tc.table))
			// same inputs, same verdict
			assert.Equal(t, tc.want, IsValidPlacement(tc.play, tc.table))
		})
	}
}

func TestLegalMoves(t *testing.T) {
	t.Run("returns the slots that could be played", func(t *testing.T) {
		hand := cards(
			card(deck.King, deck.Clubs),
			card(deck.Nine, deck.Spades),
			card(deck.Two, deck.Hearts),
			card(deck.Ace, deck.Diamonds),
		)
		table := Table{Top: card(deck.Nine, deck.Hearts), SuitRequested: deck.NullSuit}

		assert.Equal(t, []int{1, 2, 3}, LegalMoves(hand, table))
	})

	t.Run("no legal move", func(t *testing.T) {
		hand := cards(card(deck.King, deck.Clubs))
		table := Table{Top: card(deck.Two, deck.Hearts), SuitRequested: deck.NullSuit, Penalty: 2}

		assert.Empty(t, LegalMoves(hand, table))
	})
}

func TestIsOpeningCard(t *testing.T) {
	for _, r := range []deck.Rank{deck.Two, deck.Three, deck.Four, deck.Seven, deck.Ace} {
		assert.False(t, isOpeningCard(card(r, deck.Clubs)), r.String())
	}
	for _, r := range []deck.Rank{deck.Five, deck.Six, deck.Eight, deck.Ten, deck.King} {
		assert.True(t, isOpeningCard(card(r, deck.Clubs)), r.String())
	}
}
