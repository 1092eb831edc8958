package deck

import (
	"errors"
	"math/rand"
	"time"
)

var ErrEmptyDeck = errors.New("deck and discard pile are exhausted")

// Deck represents a deck of cards. Cards are drawn from the end.
type Deck []Card

// New creates the 52 card deck in canonical order: every suit of Two, then Three, up to Ace.
func New() Deck {
	cards := make([]Card, 0, 52)
	for rank := Two; rank <= Ace; rank++ {
		for _, suit := range Suits {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle shuffles the deck of cards. A nil source uses a time-seeded one.
func (d *Deck) Shuffle(r *rand.Rand) {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	actualDeck := *d
	r.Shuffle(len(actualDeck), func(i, j int) {
		actualDeck[i], actualDeck[j] = actualDeck[j], actualDeck[i]
	})
}

// Deal deals n number of cards from the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	subSlice := make([]Card, n)
	copy(subSlice, (*d)[startingIndex:numCardsInDeck])
	*d = (*d)[:startingIndex]
	return subSlice
}

// Draw removes the last card of the deck. Once the deck runs out it is
// refilled from the discard pile: everything below the top card, reversed.
func (d *Deck) Draw(pile *Pile) (Card, error) {
	if len(*d) == 0 {
		d.recycle(pile)
	}
	if len(*d) == 0 {
		return Card{}, ErrEmptyDeck
	}

	last := len(*d) - 1
	card := (*d)[last]
	*d = (*d)[:last]

	if len(*d) == 0 {
		d.recycle(pile)
	}
	return card, nil
}

func (d *Deck) recycle(pile *Pile) {
	if pile == nil || len(*pile) < 2 {
		return
	}
	under := (*pile)[:len(*pile)-1]
	refill := make(Deck, 0, len(under))
	for i := len(under) - 1; i >= 0; i-- {
		refill = append(refill, under[i])
	}
	top := (*pile)[len(*pile)-1]

	*d = append(*d, refill...)
	*pile = Pile{top}
}

// Pile is the discard stack; the most recently played card is last.
type Pile []Card

// Top returns the most recently played card.
func (p Pile) Top() (Card, bool) {
	if len(p) == 0 {
		return Card{}, false
	}
	return p[len(p)-1], true
}

func (p *Pile) Push(cards ...Card) {
	*p = append(*p, cards...)
}
