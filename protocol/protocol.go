package protocol

import "fmt"

// Cmd is the kind of intent a player sends to a table
type Cmd int

const (
	Null Cmd = iota
	Join
	Leave
	Start
	Place
	ChangeSuit
	Resign
	QueryHand
	QueryTurn
	QueryRanking
)

var CmdNames = map[Cmd]string{
	Null:         "Null",
	Join:         "Join",
	Leave:        "Leave",
	Start:        "Start",
	Place:        "Place",
	ChangeSuit:   "ChangeSuit",
	Resign:       "Resign",
	QueryHand:    "QueryHand",
	QueryTurn:    "QueryTurn",
	QueryRanking: "QueryRanking",
}

var NameToCmd = map[string]Cmd{
	"Null":         Null,
	"Join":         Join,
	"Leave":        Leave,
	"Start":        Start,
	"Place":        Place,
	"ChangeSuit":   ChangeSuit,
	"Resign":       Resign,
	"QueryHand":    QueryHand,
	"QueryTurn":    QueryTurn,
	"QueryRanking": QueryRanking,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

func (c Cmd) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cmd) UnmarshalText(text []byte) error {
	cmd, ok := NameToCmd[string(text)]
	if !ok {
		return fmt.Errorf("unknown command %q", text)
	}
	*c = cmd
	return nil
}

// Event is the kind of outcome a table reports back
type Event int

const (
	NoEvent Event = iota
	NewJoiner
	PlayerLeft
	GameStarted
	CardsPlaced
	LastCard
	PlayerFinished
	SuitRequested
	PenaltyDrawn
	PenaltyStay
	CardDrawn
	Turn
	Hand
	TurnInfo
	Leaderboard
	GameOver
	Error
)

var EventNames = map[Event]string{
	NoEvent:        "NoEvent",
	NewJoiner:      "NewJoiner",
	PlayerLeft:     "PlayerLeft",
	GameStarted:    "GameStarted",
	CardsPlaced:    "CardsPlaced",
	LastCard:       "LastCard",
	PlayerFinished: "PlayerFinished",
	SuitRequested:  "SuitRequested",
	PenaltyDrawn:   "PenaltyDrawn",
	PenaltyStay:    "PenaltyStay",
	CardDrawn:      "CardDrawn",
	Turn:           "Turn",
	Hand:           "Hand",
	TurnInfo:       "TurnInfo",
	Leaderboard:    "Leaderboard",
	GameOver:       "GameOver",
	Error:          "Error",
}

func (e Event) String() string {
	return EventNames[e]
}

func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Event) UnmarshalText(text []byte) error {
	for ev, name := range EventNames {
		if name == string(text) {
			*e = ev
			return nil
		}
	}
	return fmt.Errorf("unknown event %q", text)
}
