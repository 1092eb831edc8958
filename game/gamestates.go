package game

// playState represents the state of the table
// empty -> nobody has joined yet (pre game and post game)
// joinable -> players are gathering
// active -> game in progress
type playState int

const (
	empty playState = iota
	joinable
	active
)

var playStateNames = map[playState]string{
	empty:    "empty",
	joinable: "joinable",
	active:   "active",
}

func (ps playState) String() string {
	return playStateNames[ps]
}

// penaltyKind tells what an outstanding penalty costs the player who gives in
type penaltyKind int

const (
	noPenalty penaltyKind = iota
	drawPenalty
	stayPenalty
)

func (k penaltyKind) unit() string {
	switch k {
	case drawPenalty:
		return "cards"
	case stayPenalty:
		return "turn(s)"
	}
	return ""
}
