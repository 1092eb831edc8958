package game

// turnTracker owns the rotation: who is playing, whose turn it is,
// and how many turns each player still has to sit out.
type turnTracker struct {
	players []string
	idx     int
	stay    map[string]int
}

func newTurnTracker() *turnTracker {
	return &turnTracker{
		players: []string{},
		stay:    map[string]int{},
	}
}

func (t *turnTracker) add(playerID string) {
	t.players = append(t.players, playerID)
	t.stay[playerID] = 0
}

func (t *turnTracker) has(playerID string) bool {
	return sliceContainsString(t.players, playerID)
}

func (t *turnTracker) count() int {
	return len(t.players)
}

// rotation returns the players in turn order
func (t *turnTracker) rotation() []string {
	ps := make([]string, len(t.players))
	copy(ps, t.players)
	return ps
}

func (t *turnTracker) current() string {
	if len(t.players) == 0 {
		return ""
	}
	return t.players[t.idx]
}

// restart hands the first turn to the first player and forgets every skip.
func (t *turnTracker) restart() {
	t.idx = 0
	for _, p := range t.players {
		t.stay[p] = 0
	}
}

func (t *turnTracker) stayAway(playerID string, turns int) {
	t.stay[playerID] = turns
}

// advance moves to the next player who is not sitting out a turn. Every
// player passed over loses one turn from their count, so the walk ends
// within one round per outstanding turn.
func (t *turnTracker) advance() error {
	n := len(t.players)
	if n == 0 {
		return ErrNotActive
	}

	maxStay := 0
	for _, p := range t.players {
		if t.stay[p] > maxStay {
			maxStay = t.stay[p]
		}
	}

	for step := 0; step < n*(maxStay+1); step++ {
		t.idx = (t.idx + 1) % n
		p := t.players[t.idx]
		if t.stay[p] == 0 {
			return nil
		}
		t.stay[p]--
	}

	return ErrTurnStalemate
}

// remove takes a player out of the rotation. If it was their turn, the
// pointer steps back one seat so that the next advance lands on the player
// who followed them.
func (t *turnTracker) remove(playerID string) bool {
	i := -1
	for j, p := range t.players {
		if p == playerID {
			i = j
			break
		}
	}
	if i < 0 {
		return false
	}

	remaining := make([]string, 0, len(t.players)-1)
	remaining = append(remaining, t.players[:i]...)
	remaining = append(remaining, t.players[i+1:]...)
	t.players = remaining
	delete(t.stay, playerID)

	n := len(t.players)
	switch {
	case n == 0:
		t.idx = 0
	case i < t.idx:
		t.idx--
	case i == t.idx:
		t.idx = (i - 1 + n) % n
	}

	return true
}
