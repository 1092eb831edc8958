package server

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/minaorangina/makao/game"
	"github.com/minaorangina/makao/protocol"
)

type inbound struct {
	from *client
	msg  protocol.InboundMessage
	err  error
}

// hub connects the players at one table to its session. Intents are
// handled one at a time, in the order they arrive.
type hub struct {
	tableID      string
	session      *game.Session
	clients      map[string]*client
	registerCh   chan *client
	unregisterCh chan *client
	inboundCh    chan inbound
	done         chan struct{}
	log          logrus.FieldLogger
}

func newHub(tableID string, session *game.Session, logger logrus.FieldLogger) *hub {
	return &hub{
		tableID:      tableID,
		session:      session,
		clients:      map[string]*client{},
		registerCh:   make(chan *client),
		unregisterCh: make(chan *client),
		inboundCh:    make(chan inbound),
		done:         make(chan struct{}),
		log:          logger.WithField("table", tableID),
	}
}

// Listen runs until ctx is cancelled
func (h *hub) Listen(ctx context.Context) {
	defer func() {
		for _, c := range h.clients {
			close(c.send)
		}
		h.clients = map[string]*client{}
		close(h.done)
	}()

	for {
		select {
		case c := <-h.registerCh:
			// a player reconnecting replaces their old connection
			if old, ok := h.clients[c.playerID]; ok {
				close(old.send)
			}
			h.clients[c.playerID] = c
			c.log.Debug("client registered")

		case c := <-h.unregisterCh:
			if current, ok := h.clients[c.playerID]; ok && current == c {
				delete(h.clients, c.playerID)
				close(c.send)
				c.log.Debug("client unregistered")
			}

		case in := <-h.inboundCh:
			if in.err != nil {
				h.deliver([]protocol.OutboundMessage{errorMessage(in.msg.PlayerID, in.err)})
				continue
			}
			h.deliver(Dispatch(ctx, h.session, in.msg))

		case <-ctx.Done():
			return
		}
	}
}

func (h *hub) register(c *client) bool {
	select {
	case h.registerCh <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *hub) unregister(c *client) {
	select {
	case h.unregisterCh <- c:
	case <-h.done:
	}
}

func (h *hub) receive(in inbound) bool {
	select {
	case h.inboundCh <- in:
		return true
	case <-h.done:
		return false
	}
}

// deliver sends public messages to everyone at the table and the rest to
// their single recipient. Clients that cannot keep up are dropped.
func (h *hub) deliver(msgs []protocol.OutboundMessage) {
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			h.log.WithError(err).Error("cannot encode message")
			continue
		}

		if m.Public {
			for _, c := range h.clients {
				h.push(c, data)
			}
			continue
		}

		if c, ok := h.clients[m.PlayerID]; ok {
			h.push(c, data)
		}
	}
}

func (h *hub) push(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		c.log.Warn("client too slow, dropping")
		delete(h.clients, c.playerID)
		close(c.send)
	}
}
