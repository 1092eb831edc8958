package deck

import (
	"errors"
	"fmt"
	"strings"
)

// Rank represents a rank in a deck of cards
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = map[Rank]string{
	Two:   "Two",
	Three: "Three",
	Four:  "Four",
	Five:  "Five",
	Six:   "Six",
	Seven: "Seven",
	Eight: "Eight",
	Nine:  "Nine",
	Ten:   "Ten",
	Jack:  "Jack",
	Queen: "Queen",
	King:  "King",
	Ace:   "Ace",
}

var rankSymbols = map[Rank]string{
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

func (r Rank) String() string {
	return rankNames[r]
}

// Symbol is the short form used in chat, e.g. "7" or "Q".
func (r Rank) Symbol() string {
	if s, ok := rankSymbols[r]; ok {
		return s
	}
	return fmt.Sprintf("%d", int(r))
}

func (r Rank) valid() bool {
	return r >= Two && r <= Ace
}

// Suit represents a suit in a deck of cards
type Suit int

const (
	// NullSuit means no suit has been requested.
	NullSuit Suit = iota
	Clubs
	Diamonds
	Hearts
	Spades
	// AnySuit can only be requested, no card carries it.
	AnySuit
)

var suitNames = map[Suit]string{
	Clubs:    "Clubs",
	Diamonds: "Diamonds",
	Hearts:   "Hearts",
	Spades:   "Spades",
	AnySuit:  "Any",
	NullSuit: "None",
}

var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♦",
	Hearts:   "♥",
	Spades:   "♠",
	AnySuit:  "*",
	NullSuit: "",
}

// Suits lists the four real suits in canonical order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) String() string {
	return suitNames[s]
}

func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// Real reports whether a card can carry this suit.
func (s Suit) Real() bool {
	return s >= Clubs && s <= Spades
}

var ErrUnknownSuit = errors.New("unknown suit")

var suitAliases = map[string]Suit{
	"club":     Clubs,
	"clubs":    Clubs,
	"♣":        Clubs,
	"diamond":  Diamonds,
	"diamonds": Diamonds,
	"♦":        Diamonds,
	"heart":    Hearts,
	"hearts":   Hearts,
	"♥":        Hearts,
	"spade":    Spades,
	"spades":   Spades,
	"♠":        Spades,
	"any":      AnySuit,
	"*":        AnySuit,
}

// ParseSuit converts a requested suit name into a Suit.
func ParseSuit(s string) (Suit, error) {
	suit, ok := suitAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return NullSuit, fmt.Errorf("%w: %q", ErrUnknownSuit, s)
	}
	return suit, nil
}

func (s Suit) MarshalText() ([]byte, error) {
	name, ok := suitNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSuit, int(s))
	}
	return []byte(name), nil
}

// UnmarshalText reads a suit name. An empty name or "None" is NullSuit.
func (s *Suit) UnmarshalText(text []byte) error {
	name := strings.TrimSpace(string(text))
	if name == "" || strings.EqualFold(name, suitNames[NullSuit]) {
		*s = NullSuit
		return nil
	}

	suit, err := ParseSuit(name)
	if err != nil {
		return err
	}
	*s = suit
	return nil
}

// Card represents a playing card. Cards are values and never change.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard constructs a card. It panics on a rank or suit no real card can have.
func NewCard(rank Rank, suit Suit) Card {
	if !rank.valid() || !suit.Real() {
		panic(fmt.Sprintf("card out of range: rank %d suit %d", rank, suit))
	}
	return Card{Rank: rank, Suit: suit}
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Short returns the compact chat form, e.g. "10♥".
func (c Card) Short() string {
	return c.Rank.Symbol() + c.Suit.Symbol()
}
