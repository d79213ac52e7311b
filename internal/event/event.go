// Package event defines the canonical gamepad events and their JSON
// wire shape. Events are immutable value objects: once constructed they
// are delivered and discarded, never mutated or shared across
// goroutines by reference.
package event

import "time"

// Kind discriminates the three event types on the wire.
type Kind string

const (
	KindConnection Kind = "connection"
	KindButton     Kind = "button"
	KindAxis       Kind = "axis"
)

// Event is one of Connection, Button, or Axis.
type Event interface {
	EventKind() Kind
	ID() string
}

// Connection reports a gamepad being connected or disconnected.
type Connection struct {
	Type      Kind   `json:"type"`
	GamepadID string `json:"gamepadId"`
	Timestamp int64  `json:"timestamp"`
	Connected bool   `json:"connected"`
	Name      string `json:"name"`
	VendorID  uint16 `json:"vendorId"`
	ProductID uint16 `json:"productId"`
}

func (e Connection) EventKind() Kind { return KindConnection }
func (e Connection) ID() string      { return e.GamepadID }

// Button reports a digital or analog button transition. Value is 0..1;
// for digital buttons it is exactly 0 or 1.
type Button struct {
	Type      Kind    `json:"type"`
	GamepadID string  `json:"gamepadId"`
	Timestamp int64   `json:"timestamp"`
	Button    int     `json:"button"`
	Pressed   bool    `json:"pressed"`
	Value     float64 `json:"value"`
}

func (e Button) EventKind() Kind { return KindButton }
func (e Button) ID() string      { return e.GamepadID }

// Axis reports a stick axis position in -1..1.
type Axis struct {
	Type      Kind    `json:"type"`
	GamepadID string  `json:"gamepadId"`
	Timestamp int64   `json:"timestamp"`
	Axis      int     `json:"axis"`
	Value     float64 `json:"value"`
}

func (e Axis) EventKind() Kind { return KindAxis }
func (e Axis) ID() string      { return e.GamepadID }

// NewConnection builds a Connection event stamped with the current
// wall-clock time.
func NewConnection(id string, connected bool, name string, vendorID, productID uint16) Connection {
	return Connection{
		Type:      KindConnection,
		GamepadID: id,
		Timestamp: now(),
		Connected: connected,
		Name:      name,
		VendorID:  vendorID,
		ProductID: productID,
	}
}

// NewButton builds a Button event stamped with the current wall-clock
// time.
func NewButton(id string, button int, pressed bool, value float64) Button {
	return Button{
		Type:      KindButton,
		GamepadID: id,
		Timestamp: now(),
		Button:    button,
		Pressed:   pressed,
		Value:     value,
	}
}

// NewAxis builds an Axis event stamped with the current wall-clock time.
func NewAxis(id string, axis int, value float64) Axis {
	return Axis{
		Type:      KindAxis,
		GamepadID: id,
		Timestamp: now(),
		Axis:      axis,
		Value:     value,
	}
}

// now is the event timestamp source: milliseconds since the Unix epoch
// at the moment of normalization, not at raw sampling.
func now() int64 {
	return time.Now().UnixMilli()
}
