package game

import "github.com/minaorangina/makao/deck"

const (
	minPlayers = 2
	// 52 cards minus six hands still leaves enough to flip a plain opening card
	maxPlayers = 6
	handSize   = 5
)

// Table is everything a placement is judged against
type Table struct {
	Top           deck.Card
	SuitRequested deck.Suit
	Penalty       int
}

// IsValidPlacement decides whether play may be put on the table.
// It has no side effects.
func IsValidPlacement(play []deck.Card, table Table) bool {
	if len(play) == 0 || !sameRank(play) {
		return false
	}

	first := play[0]

	if table.Penalty > 0 {
		// Sevens stop any penalty chain
		if first.Rank == deck.Seven {
			return true
		}

		// Only a Two or a Three goes on a Two or a Three
		if isDrawCard(table.Top.Rank) && !isDrawCard(first.Rank) {
			return false
		}

		// Only a Four goes on a Four
		if table.Top.Rank == deck.Four && first.Rank != deck.Four {
			return false
		}
	} else {
		if table.Top.Rank <= deck.Four || table.SuitRequested == deck.AnySuit {
			return true
		}

		// Aces can be placed over anything
		if first.Rank == deck.Ace {
			return true
		}

		if table.SuitRequested.Real() {
			return first.Suit == table.SuitRequested
		}
	}

	return first.Rank == table.Top.Rank || first.Suit == table.Top.Suit
}

// LegalMoves returns the slots of hand that could be played on their own.
func LegalMoves(hand []deck.Card, table Table) []int {
	moves := []int{}
	for i, c := range hand {
		if IsValidPlacement([]deck.Card{c}, table) {
			moves = append(moves, i)
		}
	}
	return moves
}

// isOpeningCard reports whether a flipped card can start the discard pile:
// nothing that carries a penalty, a stop or a suit request.
func isOpeningCard(c deck.Card) bool {
	return c.Rank > deck.Four && c.Rank != deck.Seven && c.Rank != deck.Ace
}

func isDrawCard(r deck.Rank) bool {
	return r == deck.Two || r == deck.Three
}

func sameRank(cards []deck.Card) bool {
	for _, c := range cards {
		if c.Rank != cards[0].Rank {
			return false
		}
	}
	return true
}
