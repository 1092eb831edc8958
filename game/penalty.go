package game

import "github.com/minaorangina/makao/deck"

// ledger accumulates the penalty built up by a chain of Twos and Threes
// (cards to draw) or Fours (turns to sit out).
type ledger struct {
	amount int
	kind   penaltyKind
}

func (l ledger) outstanding() int {
	return l.amount
}

// apply records the effect of a play that has already been validated.
func (l *ledger) apply(cards []deck.Card) {
	if len(cards) == 0 {
		return
	}

	// Sevens stop the chain
	if cards[len(cards)-1].Rank == deck.Seven {
		*l = ledger{}
	}

	first := cards[0]
	if first.Rank > deck.Four {
		return
	}

	if first.Rank == deck.Four {
		l.amount += len(cards)
		l.kind = stayPenalty
		return
	}

	for _, c := range cards {
		l.amount += int(c.Rank)
	}
	l.kind = drawPenalty
}

// resolve hands over the whole penalty and clears it.
func (l *ledger) resolve() (penaltyKind, int) {
	kind, amount := l.kind, l.amount
	if amount == 0 {
		kind = noPenalty
	}
	*l = ledger{}
	return kind, amount
}
