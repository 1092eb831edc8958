package protocol

import (
	"github.com/minaorangina/makao/deck"
)

// InboundMessage is an intent from a player to a table
type InboundMessage struct {
	PlayerID string    `json:"playerID"`
	Command  Cmd       `json:"command"`
	Decision []int     `json:"decision,omitempty"` // hand slots, 0-based
	Suit     deck.Suit `json:"suit,omitempty"`
	Target   string    `json:"target,omitempty"` // leaderboard lookup
}

// OutboundMessage is an outcome from a table to its players.
// Public messages go to everyone at the table, the rest only to PlayerID.
type OutboundMessage struct {
	PlayerID    string      `json:"playerID,omitempty"`
	Public      bool        `json:"public"`
	Event       Event       `json:"event"`
	Message     string      `json:"message"`
	Hand        []deck.Card `json:"hand,omitempty"`
	Playable    []int       `json:"playable,omitempty"` // hand slots the recipient may place alone, 0-based
	TopCard     *deck.Card  `json:"topCard,omitempty"`
	CurrentTurn string      `json:"currentTurn,omitempty"`
	Penalty     int         `json:"penalty,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// Announce builds a message for the whole table
func Announce(event Event, message string) OutboundMessage {
	return OutboundMessage{Public: true, Event: event, Message: message}
}

// Notice builds a message for a single player
func Notice(playerID string, event Event, message string) OutboundMessage {
	return OutboundMessage{PlayerID: playerID, Event: event, Message: message}
}
