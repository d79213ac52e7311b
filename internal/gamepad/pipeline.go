package gamepad

import (
	"log/slog"

	"github.com/inputkit/padbridge/internal/dispatch"
	"github.com/inputkit/padbridge/internal/event"
	"github.com/inputkit/padbridge/internal/registry"
	"github.com/inputkit/padbridge/internal/standard"
)

// Hat axis selectors for Pipeline.Hat.
const (
	HatX = iota
	HatY
)

// Pipeline is the backend-facing ingestion surface. All methods are
// keyed by the backend-native device key; the pipeline resolves keys to
// public ids through the registry and applies change filtering before
// anything reaches the dispatcher.
//
// Methods are safe to call from any backend goroutine, but per-device
// analog channels must be fed from a single goroutine at a time (the
// throttle caches are unlocked).
type Pipeline struct {
	reg     *registry.Registry
	disp    *dispatch.Dispatcher
	epsilon float64
	log     *slog.Logger
}

// Connect registers a device and emits a connection event. Duplicate
// keys are ignored, so backends may report the same device from both an
// initial scan and a hotplug notification without double-announcing.
func (p *Pipeline) Connect(key string, meta registry.Meta, caps map[uint16]bool) {
	d, ok := p.reg.Add(key, meta, caps)
	if !ok {
		return
	}
	p.log.Info("gamepad connected",
		"id", d.PublicID,
		"name", meta.Name,
		"vendor", meta.VendorID,
		"product", meta.ProductID)
	p.disp.Forward(event.NewConnection(d.PublicID, true, meta.Name, meta.VendorID, meta.ProductID))
}

// Disconnect drops a device and emits a disconnection event built from
// the metadata cached at connect time. Unknown keys are ignored.
func (p *Pipeline) Disconnect(key string) {
	d, ok := p.reg.Remove(key)
	if !ok {
		return
	}
	p.log.Info("gamepad disconnected", "id", d.PublicID, "name", d.Name)
	p.disp.Forward(event.NewConnection(d.PublicID, false, d.Name, d.VendorID, d.ProductID))
}

// Button emits a digital button transition. Events for unknown devices
// or unmapped button indices are dropped.
func (p *Pipeline) Button(key string, button int, pressed bool) {
	if button == standard.Unmapped {
		return
	}
	d, ok := p.reg.Get(key)
	if !ok {
		return
	}
	value := 0.0
	if pressed {
		value = 1.0
	}
	p.disp.Forward(event.NewButton(d.PublicID, button, pressed, value))
}

// Trigger emits an analog trigger sample as a button event on the
// trigger's canonical index. The sample is suppressed when it is within
// epsilon of the last emitted value for that trigger.
func (p *Pipeline) Trigger(key string, slot int, value float64, pressed bool) {
	d, ok := p.reg.Get(key)
	if !ok {
		return
	}
	if !d.TriggerChanged(slot, value, p.epsilon) {
		return
	}
	p.disp.Forward(event.NewButton(d.PublicID, standard.LeftTrigger+slot, pressed, value))
}

// Axis emits a stick axis sample, suppressed when within epsilon of the
// last emitted value for that axis.
func (p *Pipeline) Axis(key string, axis int, value float64) {
	d, ok := p.reg.Get(key)
	if !ok {
		return
	}
	if !d.AxisChanged(axis, value, p.epsilon) {
		return
	}
	p.disp.Forward(event.NewAxis(d.PublicID, axis, value))
}

// Hat translates one signed hat axis sample into the two opposing d-pad
// button events of that axis. Both directions are emitted on every
// change: the sample carries the full axis state, so the direction the
// hat left must be released in the same step the new one is pressed.
func (p *Pipeline) Hat(key string, axis int, value int) {
	d, ok := p.reg.Get(key)
	if !ok {
		return
	}
	var neg, pos int
	switch axis {
	case HatX:
		neg, pos = standard.DpadLeft, standard.DpadRight
	case HatY:
		neg, pos = standard.DpadUp, standard.DpadDown
	default:
		return
	}
	for _, dir := range []struct {
		button  int
		pressed bool
	}{
		{neg, value < 0},
		{pos, value > 0},
	} {
		v := 0.0
		if dir.pressed {
			v = 1.0
		}
		p.disp.Forward(event.NewButton(d.PublicID, dir.button, dir.pressed, v))
	}
}
