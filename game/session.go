package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/minaorangina/makao/deck"
	"github.com/minaorangina/makao/protocol"
	"github.com/minaorangina/makao/ranking"
)

var (
	ErrNotJoinable       = errors.New("a Makao game is already ongoing")
	ErrAlreadyJoined     = errors.New("player has already joined")
	ErrNotJoined         = errors.New("player is not part of this Makao game")
	ErrNotEnoughPlayers  = errors.New("minimum of 2 players required")
	ErrTableFull         = errors.New("maximum of 6 players allowed")
	ErrNotActive         = errors.New("no Makao game is running")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrPendingSuitChoice = errors.New("a suit has to be selected first")
	ErrInvalidSelection  = errors.New("invalid card selection")
	ErrIllegalPlacement  = errors.New("invalid place")
	ErrCannotChangeSuit  = errors.New("the suit cannot be changed now")
	ErrInvalidSuit       = errors.New("invalid suit")
	ErrLeaderboardBusy   = errors.New("please wait until this game finishes")
	ErrTurnStalemate     = errors.New("no player is able to take a turn")
	ErrInvalidHandle     = errors.New("player handles must be non-empty and without spaces")
)

// Session is one table of Makao. It owns the deck, the discard pile, the
// hands, the rotation and the penalty of the game being played there.
// Every exported method runs to completion under the session lock.
type Session struct {
	mu sync.Mutex

	id      string
	state   playState
	deck    deck.Deck
	pile    deck.Pile
	hands   hands
	turns   *turnTracker
	penalty ledger
	// NullSuit while no suit has been requested
	suit deck.Suit

	ranking *ranking.Ranking
	rand    *rand.Rand
	log     logrus.FieldLogger
}

type Opts struct {
	TableID string
	Ranking *ranking.Ranking
	// Rand shuffles the deck at start. Nil means a time-seeded source.
	Rand   *rand.Rand
	Logger logrus.FieldLogger
}

// ExistingOpts describes a game in progress
type ExistingOpts struct {
	Opts
	Deck          deck.Deck
	Pile          deck.Pile
	Hands         map[string][]deck.Card
	Players       []string
	CurrentPlayer string
	StayTurns     map[string]int
	Penalty       int
	// StayPenalty marks Penalty as turns to sit out rather than cards to draw
	StayPenalty bool
	// Only read when an Ace is on top. Unset means the choice is still pending.
	SuitRequested deck.Suit
}

// NewSession constructs an empty table, ready for players to join
func NewSession(opts Opts) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	rk := opts.Ranking
	if rk == nil {
		rk = ranking.New(nil, logger)
	}

	s := &Session{
		id:      opts.TableID,
		ranking: rk,
		rand:    opts.Rand,
		log:     logger.WithField("table", opts.TableID),
	}
	s.reset()

	return s
}

// ExistingSession constructs a table with a game already running
func ExistingSession(opts ExistingOpts) (*Session, error) {
	if len(opts.Players) < minPlayers {
		return nil, ErrNotEnoughPlayers
	}
	if len(opts.Pile) == 0 {
		return nil, ErrNotActive
	}

	s := NewSession(opts.Opts)
	s.state = active
	s.deck = append(deck.Deck{}, opts.Deck...)
	s.pile = append(deck.Pile{}, opts.Pile...)

	for p, cards := range opts.Hands {
		s.hands.add(p)
		s.hands.give(p, cards...)
	}

	for i, p := range opts.Players {
		if !s.hands.has(p) {
			s.hands.add(p)
		}
		s.turns.add(p)
		s.turns.stayAway(p, opts.StayTurns[p])
		if p == opts.CurrentPlayer {
			s.turns.idx = i
		}
	}

	if opts.Penalty > 0 {
		s.penalty = ledger{amount: opts.Penalty, kind: drawPenalty}
		if opts.StayPenalty {
			s.penalty.kind = stayPenalty
		}
	}

	// a request only exists while an Ace is on top
	s.suit = deck.NullSuit
	if top, _ := s.pile.Top(); top.Rank == deck.Ace {
		s.suit = opts.SuitRequested
	}

	return s, nil
}

// ValidHandle reports whether a player ID can be seated. Handles are
// stored space-separated, so they cannot be empty or hold whitespace.
func ValidHandle(playerID string) bool {
	return playerID != "" && !strings.ContainsFunc(playerID, unicode.IsSpace)
}

func (s *Session) ID() string {
	return s.id
}

// Active reports whether a game is being played at the table
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state == active
}

func (s *Session) reset() {
	s.state = empty
	s.deck = deck.Deck{}
	s.pile = deck.Pile{}
	s.hands = hands{}
	s.turns = newTurnTracker()
	s.penalty = ledger{}
	s.suit = deck.NullSuit
}

// Join seats a new player at the table
func (s *Session) Join(playerID string) ([]protocol.OutboundMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ValidHandle(playerID) {
		return nil, ErrInvalidHandle
	}
	if s.state == active {
		return nil, ErrNotJoinable
	}
	if s.hands.has(playerID) {
		return nil, ErrAlreadyJoined
	}
	if s.turns.count() >= maxPlayers {
		return nil, ErrTableFull
	}

	s.hands.add(playerID)
	s.turns.add(playerID)
	s.state = joinable

	s.log.WithField("player", playerID).Info("player joined")

	return []protocol.OutboundMessage{
		protocol.Announce(protocol.NewJoiner, fmt.Sprintf("%s joined the Makao game!", playerID)),
	}, nil
}

func (s *Session) Leave(playerID string) ([]protocol.OutboundMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == active {
		return nil, ErrNotJoinable
	}
	if !s.hands.has(playerID) {
		return nil, ErrNotJoined
	}

	s.hands.remove(playerID)
	s.turns.remove(playerID)
	if s.turns.count() == 0 {
		s.state = empty
	}

	s.log.WithField("player", playerID).Info("player left")

	return []protocol.OutboundMessage{
		protocol.Announce(protocol.PlayerLeft, fmt.Sprintf("%s left the Makao game :'(", playerID)),
	}, nil
}

// Start shuffles, deals five cards to everyone in join order and flips
// the opening card. Whoever joined first plays first.
func (s *Session) Start() ([]protocol.OutboundMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == active {
		return nil, ErrNotJoinable
	}
	if s.turns.count() < minPlayers {
		return nil, ErrNotEnoughPlayers
	}

	s.deck = deck.New()
	s.deck.Shuffle(s.rand)
	s.pile = deck.Pile{}

	for _, p := range s.turns.rotation() {
		s.hands.add(p)
		s.hands.give(p, s.deck.Deal(handSize)...)
	}

	for len(s.deck) > 0 {
		flipped := s.deck.Deal(1)
		s.pile.Push(flipped...)
		if isOpeningCard(flipped[0]) {
			break
		}
	}

	s.turns.restart()
	s.penalty = ledger{}
	s.suit = deck.NullSuit
	s.state = active

	s.log.WithField("players", s.turns.rotation()).Info("game started")

	return s.buildStartMessages(), nil
}

// Place puts the cards in the given hand slots on the discard pile.
// A failed placement leaves the table untouched.
func (s *Session) Place(ctx context.Context, playerID string, indices []int) ([]protocol.OutboundMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTurn(playerID); err != nil {
		return nil, err
	}
	if s.awaitingSuit() {
		return nil, ErrPendingSuitChoice
	}

	cards, err := s.hands.peek(playerID, indices)
	if err != nil {
		return nil, err
	}
	if !IsValidPlacement(cards, s.table()) {
		return nil, ErrIllegalPlacement
	}

	if cards, err = s.hands.take(playerID, indices); err != nil {
		return nil, err
	}
	s.suit = deck.NullSuit
	s.penalty.apply(cards)
	s.pile.Push(cards...)

	s.log.WithFields(logrus.Fields{
		"player":  playerID,
		"cards":   shortCards(cards),
		"penalty": s.penalty.outstanding(),
	}).Debug("cards placed")

	msgs := []protocol.OutboundMessage{s.buildPlacedMessage(cards)}

	switch s.hands.count(playerID) {
	case 0:
		return s.finish(ctx, playerID, msgs)
	case 1:
		msgs = append(msgs, s.buildTableMessage(protocol.LastCard, fmt.Sprintf("Makao! %s has only 1 card left!", playerID)))
	}

	// whoever plays an Ace names the next suit before the turn moves on
	if s.awaitingSuit() {
		msgs = append(msgs, protocol.Notice(playerID, protocol.Turn, "You have to select a suit!"))
		return msgs, nil
	}

	return s.nextTurn(msgs, false)
}

// ChangeSuit names the suit the next player has to follow after an Ace
func (s *Session) ChangeSuit(playerID string, suit deck.Suit) ([]protocol.OutboundMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != active {
		return nil, ErrNotActive
	}
	// once named, the suit stands until the next card is placed
	if s.turns.current() != playerID || !s.awaitingSuit() {
		return nil, ErrCannotChangeSuit
	}
	if !suit.Real() && suit != deck.AnySuit {
		return nil, ErrInvalidSuit
	}

	s.suit = suit

	msgs := []protocol.OutboundMessage{s.buildSuitRequestedMessage(playerID)}

	return s.nextTurn(msgs, false)
}

// Resign gives in: the player takes on the outstanding penalty, or draws
// a single card when there is none.
func (s *Session) Resign(playerID string) ([]protocol.OutboundMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTurn(playerID); err != nil {
		return nil, err
	}
	if s.awaitingSuit() {
		return nil, ErrPendingSuitChoice
	}

	var msgs []protocol.OutboundMessage

	kind, amount := s.penalty.resolve()
	switch kind {
	case drawPenalty:
		drawn := s.draw(playerID, amount)
		msgs = s.buildDrawMessages(playerID, protocol.PenaltyDrawn, drawn)
	case stayPenalty:
		s.turns.stayAway(playerID, amount)
		msgs = []protocol.OutboundMessage{s.buildStayMessage(playerID, amount)}
	default:
		drawn := s.draw(playerID, 1)
		msgs = s.buildDrawMessages(playerID, protocol.CardDrawn, drawn)
	}

	s.log.WithFields(logrus.Fields{
		"player":  playerID,
		"penalty": amount,
	}).Debug("player resigned")

	return s.nextTurn(msgs, true)
}

// Hand returns a copy of the player's cards
func (s *Session) Hand(playerID string) ([]deck.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != active {
		return nil, ErrNotActive
	}
	if !s.hands.has(playerID) {
		return nil, ErrNotJoined
	}

	return s.hands.hand(playerID), nil
}

// Remind tells a player what the table expects and which cards they hold
func (s *Session) Remind(playerID string) ([]protocol.OutboundMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != active {
		return nil, ErrNotActive
	}
	if !s.hands.has(playerID) {
		return nil, ErrNotJoined
	}

	return []protocol.OutboundMessage{
		s.buildHintMessage(playerID),
		s.buildHandMessage(playerID),
	}, nil
}

// TurnInfo answers who is at the table and who has to move
type TurnInfo struct {
	Playing bool     `json:"playing"`
	Players []string `json:"players"`
	Current string   `json:"current,omitempty"`
}

func (s *Session) Turn() TurnInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := TurnInfo{
		Playing: s.state == active,
		Players: s.turns.rotation(),
	}
	if info.Playing {
		info.Current = s.turns.current()
	}
	return info
}

// Leaderboard queries the shared ranking. It is refused while a game is
// running at this table.
func (s *Session) Leaderboard(ctx context.Context, target string) ([]ranking.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == active {
		return nil, ErrLeaderboardBusy
	}
	return s.ranking.Leaderboard(ctx, target)
}

// Snapshot is a read-only view of the table
type Snapshot struct {
	TableID       string         `json:"tableID"`
	State         string         `json:"state"`
	Players       []string       `json:"players"`
	CurrentTurn   string         `json:"currentTurn,omitempty"`
	TopCard       *deck.Card     `json:"topCard,omitempty"`
	SuitRequested string         `json:"suitRequested,omitempty"`
	Penalty       int            `json:"penalty"`
	DeckCount     int            `json:"deckCount"`
	PileCount     int            `json:"pileCount"`
	HandCounts    map[string]int `json:"handCounts"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		TableID:    s.id,
		State:      s.state.String(),
		Players:    s.turns.rotation(),
		Penalty:    s.penalty.outstanding(),
		DeckCount:  len(s.deck),
		PileCount:  len(s.pile),
		HandCounts: map[string]int{},
	}
	for p := range s.hands {
		snap.HandCounts[p] = s.hands.count(p)
	}
	if s.state == active {
		snap.CurrentTurn = s.turns.current()
		snap.TopCard = s.topCard()
		if s.suit != deck.NullSuit {
			snap.SuitRequested = s.suit.String()
		}
	}
	return snap
}

func (s *Session) checkTurn(playerID string) error {
	if s.state != active {
		return ErrNotActive
	}
	if !s.turns.has(playerID) {
		return ErrNotJoined
	}
	if s.turns.current() != playerID {
		return ErrNotYourTurn
	}
	return nil
}

func (s *Session) table() Table {
	top, _ := s.pile.Top()
	return Table{
		Top:           top,
		SuitRequested: s.suit,
		Penalty:       s.penalty.outstanding(),
	}
}

func (s *Session) topCard() *deck.Card {
	top, ok := s.pile.Top()
	if !ok {
		return nil
	}
	return &top
}

func (s *Session) awaitingSuit() bool {
	top, ok := s.pile.Top()
	return ok && top.Rank == deck.Ace && s.suit == deck.NullSuit
}

// draw moves up to n cards from the deck to a player's hand and reports how
// many it managed. Running out of cards breaks conservation and is logged.
func (s *Session) draw(playerID string, n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		card, err := s.deck.Draw(&s.pile)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"player": playerID,
				"wanted": n,
				"drawn":  drawn,
			}).Error("cannot draw")
			break
		}
		s.hands.give(playerID, card)
		drawn++
	}
	return drawn
}

func (s *Session) nextTurn(msgs []protocol.OutboundMessage, remind bool) ([]protocol.OutboundMessage, error) {
	if err := s.turns.advance(); err != nil {
		s.log.WithError(err).WithField("players", s.turns.rotation()).Error("cannot advance turn")
		return msgs, err
	}

	return append(msgs, s.buildTurnMessages(s.turns.current(), remind)...), nil
}

// finish takes a player with an empty hand out of the game and credits
// them one point per player still holding cards.
func (s *Session) finish(ctx context.Context, playerID string, msgs []protocol.OutboundMessage) ([]protocol.OutboundMessage, error) {
	s.turns.remove(playerID)
	remaining := s.turns.count()
	s.ranking.Credit(playerID, remaining)

	s.log.WithFields(logrus.Fields{
		"player": playerID,
		"points": remaining,
	}).Info("player finished")

	msgs = append(msgs, protocol.Announce(protocol.PlayerFinished, fmt.Sprintf("Makao! %s finished!", playerID)))

	if remaining < minPlayers {
		msgs = append(msgs, protocol.Announce(protocol.GameOver, "And thus the Makao game as well..."))
		s.end(ctx)
		return msgs, nil
	}

	// nobody is left to name a suit for a finishing Ace
	if s.awaitingSuit() {
		s.suit = deck.AnySuit
		msgs = append(msgs, s.buildSuitRequestedMessage(playerID))
	}

	return s.nextTurn(msgs, false)
}

// end writes the ranking back and clears the table for new joiners
func (s *Session) end(ctx context.Context) {
	if err := s.ranking.Flush(ctx); err != nil {
		s.log.WithError(err).Error("cannot save ranking")
	}
	s.log.Info("game over")
	s.reset()
}
