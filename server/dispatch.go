package server

import (
	"context"

	"github.com/minaorangina/makao/game"
	"github.com/minaorangina/makao/protocol"
)

type handlerFunc func(ctx context.Context, s *game.Session, msg protocol.InboundMessage) ([]protocol.OutboundMessage, error)

var dispatchTable = map[protocol.Cmd]handlerFunc{
	protocol.Join: func(_ context.Context, s *game.Session, msg protocol.InboundMessage) ([]protocol.OutboundMessage, error) {
		return s.Join(msg.PlayerID)
	},
	protocol.Leave: func(_ context.Context, s *game.Session, msg protocol.InboundMessage) ([]protocol.OutboundMessage, error) {
		return s.Leave(msg.PlayerID)
	},
	protocol.Start: func(_ context.Context, s *game.Session, _ protocol.InboundMessage) ([]protocol.OutboundMessage, error) {
		return s.Start()
	},
	protocol.Place: func(ctx context.Context, s *game.Session, msg protocol.InboundMessage) ([]protocol.OutboundMessage, error) {
		return s.Place(ctx, msg.PlayerID, msg.Decision)
	},
	protocol.ChangeSuit: func(_ context.Context, s *game.Session, msg protocol.InboundMessage) ([]protocol.OutboundMessage, error) {
		return s.ChangeSuit(msg.PlayerID, msg.Suit)
	},
	protocol.Resign: func(_ context.Context, s *game.Session, msg protocol.InboundMessage) ([]protocol.OutboundMessage, error) {
		return s.Resign(msg.PlayerID)
	},
	protocol.QueryHand: func(_ context.Context, s *game.Session, msg protocol.InboundMessage) ([]protocol.OutboundMessage, error) {
		return s.Remind(msg.PlayerID)
	},
	protocol.QueryTurn: func(_ context.Context, s *game.Session, msg protocol.InboundMessage) ([]protocol.OutboundMessage, error) {
		info := s.Turn()
		out := protocol.Notice(msg.PlayerID, protocol.TurnInfo, info.String())
		out.CurrentTurn = info.Current
		return []protocol.OutboundMessage{out}, nil
	},
	protocol.QueryRanking: func(ctx context.Context, s *game.Session, msg protocol.InboundMessage) ([]protocol.OutboundMessage, error) {
		entries, err := s.Leaderboard(ctx, msg.Target)
		if err != nil {
			return nil, err
		}
		return []protocol.OutboundMessage{
			protocol.Announce(protocol.Leaderboard, game.FormatLeaderboard(entries, msg.Target)),
		}, nil
	},
}

// Dispatch runs a player's intent against a table. A failure is reported
// to the acting player only.
func Dispatch(ctx context.Context, s *game.Session, msg protocol.InboundMessage) []protocol.OutboundMessage {
	handle, ok := dispatchTable[msg.Command]
	if !ok {
		return []protocol.OutboundMessage{errorMessage(msg.PlayerID, ErrUnknownCommand)}
	}

	msgs, err := handle(ctx, s, msg)
	if err != nil {
		return append(msgs, errorMessage(msg.PlayerID, err))
	}
	return msgs
}

func errorMessage(playerID string, err error) protocol.OutboundMessage {
	msg := protocol.Notice(playerID, protocol.Error, err.Error())
	msg.Error = err.Error()
	return msg
}
