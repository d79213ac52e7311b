// Package gamepad ties one input backend to the normalization pipeline
// and the dispatch layer. Backends produce raw device happenings; the
// pipeline turns them into canonical events keyed by a stable public id.
package gamepad

// Shape describes how a backend produces events, which determines the
// dispatch strategy the monitor builds for it.
type Shape int

const (
	// Queued backends run their own worker goroutine and tolerate the
	// 16 ms drain latency; their events are batched and axis-coalesced.
	Queued Shape = iota
	// Direct backends are signal driven and already paced by their
	// source; their events are delivered synchronously.
	Direct
)

// Backend is one source of raw gamepad input. A backend owns its device
// handles and its producer goroutines and reports everything it sees
// through the Pipeline handed to Start.
type Backend interface {
	// Name is the backend identifier; it prefixes the public ids of
	// every device the backend registers.
	Name() string
	// Shape selects the dispatch strategy.
	Shape() Shape
	// Epsilon is the minimum normalized-value change the backend's
	// analog channels must move before a new event is emitted.
	Epsilon() float64
	// Start begins producing into p. It returns an error if the
	// underlying input facility cannot be initialized at all; device
	// level failures are handled per device and never fail Start.
	Start(p *Pipeline) error
	// Stop halts production and releases device handles. No Pipeline
	// call may be in flight after Stop returns.
	Stop()
}
