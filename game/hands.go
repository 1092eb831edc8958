package game

import "github.com/minaorangina/makao/deck"

// hands holds every player's cards. Cards are selected by slot index, never by value.
type hands map[string][]deck.Card

func (h hands) add(playerID string) {
	h[playerID] = []deck.Card{}
}

// remove drops a player and returns whatever they were still holding
func (h hands) remove(playerID string) []deck.Card {
	left := h[playerID]
	delete(h, playerID)
	return left
}

func (h hands) has(playerID string) bool {
	_, ok := h[playerID]
	return ok
}

func (h hands) give(playerID string, cards ...deck.Card) {
	h[playerID] = append(h[playerID], cards...)
}

func (h hands) count(playerID string) int {
	return len(h[playerID])
}

// hand returns a copy of a player's cards
func (h hands) hand(playerID string) []deck.Card {
	cards := make([]deck.Card, len(h[playerID]))
	copy(cards, h[playerID])
	return cards
}

// peek returns the selected cards in selection order without removing them.
func (h hands) peek(playerID string, indices []int) ([]deck.Card, error) {
	held := h[playerID]
	if len(indices) == 0 || !indicesUnique(indices) {
		return nil, ErrInvalidSelection
	}

	cards := make([]deck.Card, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(held) {
			return nil, ErrInvalidSelection
		}
		cards = append(cards, held[idx])
	}
	return cards, nil
}

// take removes the selected slots, keeping the order of the remaining cards.
func (h hands) take(playerID string, indices []int) ([]deck.Card, error) {
	cards, err := h.peek(playerID, indices)
	if err != nil {
		return nil, err
	}

	selected := intSliceToSet(indices)
	kept := make([]deck.Card, 0, len(h[playerID])-len(indices))
	for i, c := range h[playerID] {
		if _, ok := selected[i]; !ok {
			kept = append(kept, c)
		}
	}
	h[playerID] = kept

	return cards, nil
}
