package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inputkit/padbridge/internal/event"
)

type collector struct {
	mu     sync.Mutex
	events []event.Event
}

func (c *collector) handle(ev event.Event) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
}

func (c *collector) snapshot() []event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]event.Event(nil), c.events...)
}

func TestDirectDeliversSynchronously(t *testing.T) {
	d := NewDirect()
	var c collector
	d.Attach(c.handle)

	d.Forward(event.NewButton("dev1", 0, true, 1))
	require.Len(t, c.snapshot(), 1)
}

func TestQueuedDeliversOnFlushInOrder(t *testing.T) {
	d := NewQueued(DrainInterval)
	var c collector
	d.Attach(c.handle)

	d.Forward(event.NewButton("dev1", 0, true, 1))
	d.Forward(event.NewButton("dev1", 1, true, 1))
	assert.Empty(t, c.snapshot(), "nothing delivered before the drain")

	d.Flush()
	got := c.snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].(event.Button).Button)
	assert.Equal(t, 1, got[1].(event.Button).Button)
}

func TestFlushCoalescesAxes(t *testing.T) {
	d := NewQueued(DrainInterval)
	var c collector
	d.Attach(c.handle)

	d.Forward(event.NewAxis("dev1", 0, 0.1))
	d.Forward(event.NewAxis("dev1", 0, 0.5))
	d.Flush()

	got := c.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, 0.5, got[0].(event.Axis).Value)
}

func TestNoDeliveryAfterDetach(t *testing.T) {
	d := NewQueued(DrainInterval)
	var c collector
	d.Attach(c.handle)

	d.Forward(event.NewAxis("dev1", 0, 0.1))
	d.Detach()
	d.Flush()

	assert.Empty(t, c.snapshot())
}

func TestStopDropsQueuedEvents(t *testing.T) {
	d := NewQueued(DrainInterval)
	var c collector
	d.Attach(c.handle)
	d.Start()

	d.Forward(event.NewAxis("dev1", 0, 0.1))
	d.Stop()
	d.Flush()

	assert.Empty(t, c.snapshot(), "undelivered events are discarded on Stop")
}

func TestDrainLoopDelivers(t *testing.T) {
	d := NewQueued(time.Millisecond)
	var c collector
	d.Attach(c.handle)
	d.Start()
	defer d.Stop()

	d.Forward(event.NewButton("dev1", 9, true, 1))

	require.Eventually(t, func() bool {
		return len(c.snapshot()) == 1
	}, time.Second, time.Millisecond)
}

func TestDeliverBypassesQueue(t *testing.T) {
	d := NewQueued(DrainInterval)
	var c collector
	d.Attach(c.handle)

	d.Deliver(event.NewConnection("dev1", true, "Pad", 0, 0))
	require.Len(t, c.snapshot(), 1)
}
