package hub

import (
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/inputkit/padbridge/internal/registry"
)

// Lister provides the connected-gamepad snapshot served to clients on
// request.
type Lister interface {
	ListGamepads() []registry.Info
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket
// connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ReadPump reads client requests until the connection drops. The only
// request clients send is list_gamepads.
func (c *Client) ReadPump(lister Lister, log *slog.Logger) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var req ClientMessage
		if err := json.Unmarshal(message, &req); err != nil {
			log.Warn("bad client message", "error", err)
			continue
		}

		switch req.Type {
		case "list_gamepads":
			data, err := json.Marshal(NewGamepadListMessage(lister.ListGamepads()))
			if err != nil {
				log.Error("marshal gamepad list", "error", err)
				continue
			}
			select {
			case c.send <- data:
			default:
			}
		}
	}
}
