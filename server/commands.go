package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/minaorangina/makao/deck"
	"github.com/minaorangina/makao/protocol"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad command arguments")
)

// chat commands and the intent each one maps to
var commandAliases = map[string]protocol.Cmd{
	"j":         protocol.Join,
	"join":      protocol.Join,
	"leave":     protocol.Leave,
	"start":     protocol.Start,
	"p":         protocol.Place,
	"play":      protocol.Place,
	"place":     protocol.Place,
	"c":         protocol.ChangeSuit,
	"change":    protocol.ChangeSuit,
	"pa":        protocol.Resign,
	"pass":      protocol.Resign,
	"d":         protocol.Resign,
	"draw":      protocol.Resign,
	"resign":    protocol.Resign,
	"surrender": protocol.Resign,
	"forfeit":   protocol.Resign,
	"re":        protocol.QueryHand,
	"remind":    protocol.QueryHand,
	"cards":     protocol.QueryHand,
	"turn":      protocol.QueryTurn,
	"who":       protocol.QueryTurn,
	"rank":      protocol.QueryRanking,
	"score":     protocol.QueryRanking,
	"stats":     protocol.QueryRanking,
	"leader":    protocol.QueryRanking,
}

// ParseCommand turns a chat line such as ".p 1 3" into an intent.
// Card slots are typed 1-based and come out 0-based.
func ParseCommand(text string) (protocol.InboundMessage, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], ".") {
		return protocol.InboundMessage{}, fmt.Errorf("%w: %q", ErrUnknownCommand, text)
	}

	name := strings.ToLower(strings.TrimPrefix(fields[0], "."))
	cmd, ok := commandAliases[name]
	if !ok {
		return protocol.InboundMessage{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}

	msg := protocol.InboundMessage{Command: cmd}
	args := fields[1:]

	switch cmd {
	case protocol.Place:
		if len(args) == 0 {
			return protocol.InboundMessage{}, fmt.Errorf("%w: no cards selected", ErrBadArguments)
		}
		for _, a := range args {
			slot, err := strconv.Atoi(a)
			if err != nil {
				return protocol.InboundMessage{}, fmt.Errorf("%w: %q is not a card number", ErrBadArguments, a)
			}
			msg.Decision = append(msg.Decision, slot-1)
		}

	case protocol.ChangeSuit:
		if len(args) != 1 {
			return protocol.InboundMessage{}, fmt.Errorf("%w: name one suit", ErrBadArguments)
		}
		suit, err := deck.ParseSuit(args[0])
		if err != nil {
			return protocol.InboundMessage{}, err
		}
		msg.Suit = suit

	case protocol.QueryRanking:
		if len(args) > 0 {
			msg.Target = args[0]
		}

	default:
		if len(args) > 0 {
			return protocol.InboundMessage{}, fmt.Errorf("%w: %s takes none", ErrBadArguments, fields[0])
		}
	}

	return msg, nil
}

// decodeInbound accepts either a JSON InboundMessage or a chat command
func decodeInbound(data []byte) (protocol.InboundMessage, error) {
	text := strings.TrimSpace(string(data))

	if strings.HasPrefix(text, "{") {
		var msg protocol.InboundMessage
		if err := json.Unmarshal([]byte(text), &msg); err != nil {
			return protocol.InboundMessage{}, fmt.Errorf("%w: %w", ErrUnknownCommand, err)
		}
		return msg, nil
	}

	return ParseCommand(text)
}
