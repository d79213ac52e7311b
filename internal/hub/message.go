package hub

import (
	"time"

	"github.com/inputkit/padbridge/internal/registry"
)

// GamepadListMessage is the response to a list_gamepads request.
type GamepadListMessage struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Gamepads  []registry.Info `json:"gamepads"`
}

// NewGamepadListMessage wraps a registry snapshot for the wire.
func NewGamepadListMessage(gamepads []registry.Info) *GamepadListMessage {
	return &GamepadListMessage{
		Type:      "gamepads",
		Timestamp: time.Now().UnixMilli(),
		Gamepads:  gamepads,
	}
}

// ClientMessage represents a message sent from the client to the
// server.
type ClientMessage struct {
	Type string `json:"type"`
}
