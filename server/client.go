package server

import (
	"time"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBufferSize = 64
)

// NewID constructs a connection ID
func NewID() string {
	return uuid.NewV4().String()
}

// client is one websocket connection of a player at a table
type client struct {
	id       string
	playerID string
	hub      *hub
	conn     *websocket.Conn
	send     chan []byte
	log      logrus.FieldLogger
}

func newClient(h *hub, playerID string, conn *websocket.Conn) *client {
	id := NewID()
	return &client{
		id:       id,
		playerID: playerID,
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		log:      h.log.WithFields(logrus.Fields{"client": id, "player": playerID}),
	}
}

// readPump forwards everything the player types to the hub
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("connection lost")
			}
			return
		}

		msg, err := decodeInbound(data)
		msg.PlayerID = c.playerID
		if !c.hub.receive(inbound{from: c, msg: msg, err: err}) {
			return
		}
	}
}

// writePump delivers the hub's messages and keeps the connection alive
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(msg)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
