package gamepad

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inputkit/padbridge/internal/event"
	"github.com/inputkit/padbridge/internal/registry"
	"github.com/inputkit/padbridge/internal/standard"
)

// fakeBackend lets the test drive the pipeline directly.
type fakeBackend struct {
	name     string
	shape    Shape
	startErr error

	pipe    *Pipeline
	stopped bool
}

func (f *fakeBackend) Name() string     { return f.name }
func (f *fakeBackend) Shape() Shape     { return f.shape }
func (f *fakeBackend) Epsilon() float64 { return 0.005 }

func (f *fakeBackend) Start(p *Pipeline) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.pipe = p
	return nil
}

func (f *fakeBackend) Stop() { f.stopped = true }

type collector struct {
	mu     sync.Mutex
	events []event.Event
}

func (c *collector) handle(ev event.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *collector) snapshot() []event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]event.Event(nil), c.events...)
}

func TestMonitorDirectFlow(t *testing.T) {
	fb := &fakeBackend{name: "fake", shape: Direct}
	m := New(fb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	col := &collector{}
	require.NoError(t, m.Start(col.handle))

	fb.pipe.Connect("dev0", registry.Meta{Name: "Pad One"}, nil)
	fb.pipe.Button("dev0", standard.ButtonA, true)

	events := col.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, event.KindConnection, events[0].EventKind())
	assert.Equal(t, event.KindButton, events[1].EventKind())

	list := m.ListGamepads()
	require.Len(t, list, 1)
	assert.Equal(t, "fake_0", list[0].ID)
	assert.Equal(t, "Pad One", list[0].Name)

	m.Stop()
	assert.True(t, fb.stopped)
	assert.Empty(t, m.ListGamepads())
}

func TestMonitorQueuedFlowDrains(t *testing.T) {
	fb := &fakeBackend{name: "fake", shape: Queued}
	m := New(fb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer m.Stop()
	col := &collector{}
	require.NoError(t, m.Start(col.handle))

	fb.pipe.Connect("dev0", registry.Meta{Name: "Pad"}, nil)
	fb.pipe.Axis("dev0", standard.LeftStickX, 0.2)
	fb.pipe.Axis("dev0", standard.LeftStickX, 0.9)

	require.Eventually(t, func() bool {
		return len(col.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	events := col.snapshot()
	assert.Equal(t, event.KindConnection, events[0].EventKind())
	ax := events[1].(event.Axis)
	assert.Equal(t, 0.9, ax.Value, "older axis sample should be coalesced away")
}

func TestMonitorStartError(t *testing.T) {
	fb := &fakeBackend{name: "fake", shape: Queued, startErr: errors.New("no input facility")}
	m := New(fb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := m.Start(func(event.Event) {})
	require.Error(t, err)
	assert.Empty(t, m.ListGamepads())
}

func TestMonitorStopSilencesCallbacks(t *testing.T) {
	fb := &fakeBackend{name: "fake", shape: Direct}
	m := New(fb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	col := &collector{}
	require.NoError(t, m.Start(col.handle))

	fb.pipe.Connect("dev0", registry.Meta{Name: "Pad"}, nil)
	m.Stop()

	before := len(col.snapshot())
	fb.pipe.Connect("dev1", registry.Meta{Name: "Pad Two"}, nil)
	assert.Len(t, col.snapshot(), before)
}

func TestMonitorStopEmitsNoDisconnects(t *testing.T) {
	fb := &fakeBackend{name: "fake", shape: Direct}
	m := New(fb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	col := &collector{}
	require.NoError(t, m.Start(col.handle))

	fb.pipe.Connect("dev0", registry.Meta{Name: "Pad"}, nil)
	m.Stop()

	for _, ev := range col.snapshot() {
		if conn, ok := ev.(event.Connection); ok {
			assert.True(t, conn.Connected)
		}
	}
}

func TestEmitExistingDevicesReplaysConnections(t *testing.T) {
	fb := &fakeBackend{name: "fake", shape: Queued}
	m := New(fb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer m.Stop()
	col := &collector{}
	require.NoError(t, m.Start(col.handle))

	fb.pipe.Connect("dev0", registry.Meta{Name: "Pad A", VendorID: 1}, nil)
	fb.pipe.Connect("dev1", registry.Meta{Name: "Pad B", VendorID: 2}, nil)
	require.Eventually(t, func() bool {
		return len(col.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	// Deliver is synchronous, so the replay reaches the callback
	// before EmitExistingDevices returns.
	m.EmitExistingDevices()
	events := col.snapshot()
	require.Len(t, events, 4)
	replay := events[2:]
	assert.Equal(t, "fake_0", replay[0].ID())
	assert.Equal(t, "fake_1", replay[1].ID())
	for _, ev := range replay {
		conn := ev.(event.Connection)
		assert.True(t, conn.Connected)
	}
}

func TestRapidConnectDisconnectPairSurvives(t *testing.T) {
	fb := &fakeBackend{name: "fake", shape: Queued}
	m := New(fb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer m.Stop()
	col := &collector{}
	require.NoError(t, m.Start(col.handle))

	fb.pipe.Connect("dev0", registry.Meta{Name: "Pad"}, nil)
	fb.pipe.Disconnect("dev0")

	require.Eventually(t, func() bool {
		return len(col.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	events := col.snapshot()
	assert.True(t, events[0].(event.Connection).Connected)
	assert.False(t, events[1].(event.Connection).Connected)
	assert.Empty(t, m.ListGamepads())
}
