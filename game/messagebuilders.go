package game

import (
	"fmt"
	"strings"

	"github.com/minaorangina/makao/deck"
	"github.com/minaorangina/makao/protocol"
	"github.com/minaorangina/makao/ranking"
)

// buildTableMessage is a public message carrying the state of the table
func (s *Session) buildTableMessage(event protocol.Event, message string) protocol.OutboundMessage {
	msg := protocol.Announce(event, message)
	msg.TopCard = s.topCard()
	msg.CurrentTurn = s.turns.current()
	msg.Penalty = s.penalty.outstanding()

	return msg
}

func (s *Session) buildStartMessages() []protocol.OutboundMessage {
	top, _ := s.pile.Top()
	players := s.turns.rotation()

	msgs := []protocol.OutboundMessage{
		s.buildTableMessage(protocol.GameStarted,
			fmt.Sprintf("The game of Makao begins! Player order is: %s.", strings.Join(players, ", "))),
		s.buildTableMessage(protocol.CardsPlaced, fmt.Sprintf("Top card is: %s", top)),
	}

	for _, p := range players {
		msgs = append(msgs, s.buildHandMessage(p))
	}

	return append(msgs, protocol.Notice(s.turns.current(), protocol.Turn,
		fmt.Sprintf("It's your turn %s", s.turns.current())))
}

func (s *Session) buildPlacedMessage(cards []deck.Card) protocol.OutboundMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Last %s placed:", plural(len(cards), "card"))
	for _, c := range cards {
		b.WriteString("  " + c.Short())
	}

	if s.penalty.outstanding() > 0 {
		b.WriteString("  -  " + s.penaltyText())
	}

	return s.buildTableMessage(protocol.CardsPlaced, b.String())
}

func (s *Session) penaltyText() string {
	return fmt.Sprintf("Penalty sums to %d %s!", s.penalty.outstanding(), s.penalty.kind.unit())
}

func (s *Session) buildSuitRequestedMessage(playerID string) protocol.OutboundMessage {
	if s.suit == deck.AnySuit {
		return s.buildTableMessage(protocol.SuitRequested,
			fmt.Sprintf("%s is an indulgent god. The next player can start with any card!", playerID))
	}
	return s.buildTableMessage(protocol.SuitRequested, fmt.Sprintf("Suit requested:  %s", s.suit.Symbol()))
}

func (s *Session) buildDrawMessages(playerID string, event protocol.Event, drawn int) []protocol.OutboundMessage {
	text := fmt.Sprintf("%s drew a card", playerID)
	if event == protocol.PenaltyDrawn {
		text = fmt.Sprintf("%s had to draw %d cards :'(", playerID, drawn)
	}

	return []protocol.OutboundMessage{
		s.buildTableMessage(event, text),
		s.buildHandMessage(playerID),
	}
}

func (s *Session) buildStayMessage(playerID string, turns int) protocol.OutboundMessage {
	return s.buildTableMessage(protocol.PenaltyStay,
		fmt.Sprintf("%s will have to stay away for %d %s :'(", playerID, turns, plural(turns, "turn")))
}

// buildHandMessage lists a player's cards with the 1-based slots they are placed by
func (s *Session) buildHandMessage(playerID string) protocol.OutboundMessage {
	cards := s.hands.hand(playerID)

	slots := make([]string, 0, len(cards))
	for i, c := range cards {
		slots = append(slots, fmt.Sprintf("%d[%s]", i+1, c.Short()))
	}

	msg := protocol.Notice(playerID, protocol.Hand, "Your cards are:  "+strings.Join(slots, "  "))
	msg.Hand = cards
	msg.TopCard = s.topCard()
	msg.CurrentTurn = s.turns.current()
	msg.Penalty = s.penalty.outstanding()
	if s.turns.current() == playerID && !s.awaitingSuit() {
		msg.Playable = LegalMoves(cards, s.table())
	}

	return msg
}

// buildHintMessage tells a player what may be placed right now
func (s *Session) buildHintMessage(playerID string) protocol.OutboundMessage {
	top, _ := s.pile.Top()

	var text string
	switch {
	case s.penalty.outstanding() > 0:
		text = fmt.Sprintf("Top card is: %s. %s", top, s.penaltyText())
	case s.awaitingSuit():
		text = fmt.Sprintf("Top card is: %s. A suit has to be selected.", top)
	case top.Rank <= deck.Four || s.suit == deck.AnySuit:
		text = "Any card(s) may be placed."
	case s.suit.Real():
		text = fmt.Sprintf("Suit type: %s is requested.", s.suit.Symbol())
	default:
		text = fmt.Sprintf("Top card is: %s", top)
	}

	msg := protocol.Notice(playerID, protocol.Turn, text)
	msg.TopCard = s.topCard()
	msg.CurrentTurn = s.turns.current()
	msg.Penalty = s.penalty.outstanding()

	return msg
}

func (s *Session) buildTurnMessages(playerID string, remind bool) []protocol.OutboundMessage {
	msgs := []protocol.OutboundMessage{
		protocol.Notice(playerID, protocol.Turn, fmt.Sprintf("It's your turn %s", playerID)),
	}
	if remind {
		msgs = append(msgs, s.buildHintMessage(playerID))
	}
	return append(msgs, s.buildHandMessage(playerID))
}

func (ti TurnInfo) String() string {
	if !ti.Playing {
		if len(ti.Players) == 0 {
			return "There's no running Makao game."
		}
		return fmt.Sprintf("%s joined the game.", strings.Join(ti.Players, ", "))
	}
	return fmt.Sprintf("Currently playing %s. %s has to do the move.", strings.Join(ti.Players, ", "), ti.Current)
}

var podium = []string{"1st", "2nd", "3rd"}

// FormatLeaderboard renders the answer to a ranking query
func FormatLeaderboard(entries []ranking.Entry, target string) string {
	if target != "" && len(entries) == 1 {
		return fmt.Sprintf("%s has %d points.", entries[0].Player, entries[0].Score)
	}

	places := make([]string, 0, len(entries))
	for i, e := range entries {
		place := fmt.Sprintf("%d.", i+1)
		if i < len(podium) {
			place = podium[i]
		}
		places = append(places, fmt.Sprintf("%s %s (%d points)", place, e.Player, e.Score))
	}
	return strings.Join(places, ", ")
}
