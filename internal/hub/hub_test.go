package hub

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inputkit/padbridge/internal/event"
	"github.com/inputkit/padbridge/internal/registry"
)

type staticLister []registry.Info

func (l staticLister) ListGamepads() []registry.Info { return l }

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func registered(t *testing.T, h *Hub, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.clients) == want
	}, time.Second, 5*time.Millisecond)
}

func TestBroadcastReachesAllClients(t *testing.T) {
	h := NewHub(discard())
	go h.Run()

	c1 := NewClient(h, nil)
	c2 := NewClient(h, nil)
	h.Register(c1)
	h.Register(c2)
	registered(t, h, 2)

	h.Broadcast([]byte(`{"type":"button"}`))

	assert.Equal(t, `{"type":"button"}`, string(<-c1.send))
	assert.Equal(t, `{"type":"button"}`, string(<-c2.send))
}

func TestSlowClientIsDropped(t *testing.T) {
	h := NewHub(discard())
	go h.Run()

	c := NewClient(h, nil)
	h.Register(c)
	registered(t, h, 1)

	// Fill the send buffer; the next broadcast must kick the client
	// out instead of blocking.
	for i := 0; i < cap(c.send); i++ {
		c.send <- []byte("x")
	}
	h.Broadcast([]byte("y"))

	registered(t, h, 0)
}

func TestBroadcasterMarshalsEvents(t *testing.T) {
	h := NewHub(discard())
	go h.Run()

	c := NewClient(h, nil)
	h.Register(c)
	registered(t, h, 1)

	b := NewBroadcaster(h, staticLister(nil), discard())
	b.HandleEvent(event.NewAxis("evdev_0", 2, -0.5))

	var got map[string]any
	require.NoError(t, json.Unmarshal(<-c.send, &got))
	assert.Equal(t, "axis", got["type"])
	assert.Equal(t, "evdev_0", got["gamepadId"])
	assert.Equal(t, 2.0, got["axis"])
	assert.Equal(t, -0.5, got["value"])
}

func TestSendInitialStateReplaysConnections(t *testing.T) {
	h := NewHub(discard())
	lister := staticLister{
		{ID: "sdl_0", Name: "Pad A", VendorID: 1, ProductID: 2},
		{ID: "sdl_1", Name: "Pad B", VendorID: 3, ProductID: 4},
	}
	b := NewBroadcaster(h, lister, discard())

	c := NewClient(h, nil)
	b.SendInitialState(c)

	require.Len(t, c.send, 2)
	var got map[string]any
	require.NoError(t, json.Unmarshal(<-c.send, &got))
	assert.Equal(t, "connection", got["type"])
	assert.Equal(t, "sdl_0", got["gamepadId"])
	assert.Equal(t, true, got["connected"])
	assert.Equal(t, "Pad A", got["name"])
}

func TestGamepadListMessageShape(t *testing.T) {
	msg := NewGamepadListMessage([]registry.Info{{ID: "xinput_0", Name: "Xbox Controller"}})
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "gamepads", got["type"])
	pads := got["gamepads"].([]any)
	require.Len(t, pads, 1)
	assert.Equal(t, "xinput_0", pads[0].(map[string]any)["id"])
}
