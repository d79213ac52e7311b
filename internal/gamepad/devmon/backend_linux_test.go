package devmon

import (
	"io"
	"log/slog"
	"testing"

	"github.com/kenshaw/evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inputkit/padbridge/internal/event"
	"github.com/inputkit/padbridge/internal/gamepad"
	"github.com/inputkit/padbridge/internal/registry"
	"github.com/inputkit/padbridge/internal/standard"
)

type pipeTap struct {
	pipe *gamepad.Pipeline
}

func (p *pipeTap) Name() string                     { return "devmon" }
func (p *pipeTap) Shape() gamepad.Shape             { return gamepad.Direct }
func (p *pipeTap) Epsilon() float64                 { return epsilon }
func (p *pipeTap) Start(pl *gamepad.Pipeline) error { p.pipe = pl; return nil }
func (p *pipeTap) Stop()                            {}

func TestIsGamepadProbe(t *testing.T) {
	south := map[evdev.KeyType]bool{evdev.KeyType(standard.BtnSouth): true}
	assert.True(t, isGamepad(south, nil))

	flightAxes := map[evdev.AbsoluteType]evdev.Axis{
		evdev.AbsoluteType(standard.AbsThrottle): {},
	}
	assert.True(t, isGamepad(nil, flightAxes))

	keyboard := map[evdev.KeyType]bool{evdev.KeyType(0x1e): true}
	assert.False(t, isGamepad(keyboard, nil))
}

func TestHandleAbsUsesReportedRange(t *testing.T) {
	tap := &pipeTap{}
	m := gamepad.New(tap, slog.New(slog.NewTextHandler(io.Discard, nil)))
	var got []event.Event
	require.NoError(t, m.Start(func(ev event.Event) { got = append(got, ev) }))
	t.Cleanup(m.Stop)

	d := &device{
		path: "/dev/input/event3",
		abs: map[evdev.AbsoluteType]evdev.Axis{
			evdev.AbsoluteType(standard.AbsX): {Min: 0, Max: 255},
			evdev.AbsoluteType(standard.AbsZ): {Min: 0, Max: 255},
		},
	}
	tap.pipe.Connect(d.path, registry.Meta{Name: "Pad"}, nil)
	b := &Backend{log: slog.New(slog.NewTextHandler(io.Discard, nil)), pipe: tap.pipe}
	before := len(got)

	b.handleAbs(d, standard.AbsX, 255)
	b.handleAbs(d, standard.AbsZ, 255)

	events := got[before:]
	require.Len(t, events, 2)

	ax, ok := events[0].(event.Axis)
	require.True(t, ok)
	assert.Equal(t, standard.LeftStickX, ax.Axis)
	assert.Equal(t, 1.0, ax.Value)

	trig, ok := events[1].(event.Button)
	require.True(t, ok)
	assert.Equal(t, standard.LeftTrigger, trig.Button)
	assert.True(t, trig.Pressed)
	assert.Equal(t, 1.0, trig.Value)
}
