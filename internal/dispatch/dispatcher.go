// Package dispatch moves finished events from the producer side to the
// single registered consumer callback.
//
// Two delivery shapes are supported. The queued shape backs
// worker-thread backends: producers push onto a queue and a fixed 16 ms
// drain on a dispatcher-owned goroutine pops the whole queue, applies
// axis coalescing, and invokes the callback. The direct shape backs
// signal-driven backends: Forward invokes the callback synchronously,
// serialized by the callback lock.
//
// The queue lock is distinct from the callback lock so producers never
// contend with delivery.
package dispatch

import (
	"sync"
	"time"

	"github.com/inputkit/padbridge/internal/event"
)

// DrainInterval is the queued-shape drain cadence (~60 Hz).
const DrainInterval = 16 * time.Millisecond

// Dispatcher delivers events to at most one consumer callback.
type Dispatcher struct {
	interval time.Duration
	direct   bool

	cbMu sync.Mutex
	cb   func(event.Event)

	queueMu sync.Mutex
	queue   []event.Event

	done chan struct{}
	wg   sync.WaitGroup
}

// NewQueued creates a dispatcher in the worker-thread shape with the
// given drain interval.
func NewQueued(interval time.Duration) *Dispatcher {
	return &Dispatcher{interval: interval}
}

// NewDirect creates a dispatcher in the signal-driven shape: Forward
// delivers synchronously and no drain goroutine runs.
func NewDirect() *Dispatcher {
	return &Dispatcher{direct: true}
}

// Attach installs the consumer callback, replacing any previous one.
func (d *Dispatcher) Attach(cb func(event.Event)) {
	d.cbMu.Lock()
	d.cb = cb
	d.cbMu.Unlock()
}

// Detach removes the consumer callback. No event is delivered after
// Detach returns.
func (d *Dispatcher) Detach() {
	d.cbMu.Lock()
	d.cb = nil
	d.cbMu.Unlock()
}

// Forward hands an event to the dispatcher. In the direct shape it is
// delivered before Forward returns; in the queued shape it waits for the
// next drain.
func (d *Dispatcher) Forward(ev event.Event) {
	if d.direct {
		d.deliver([]event.Event{ev})
		return
	}
	d.queueMu.Lock()
	d.queue = append(d.queue, ev)
	d.queueMu.Unlock()
}

// Deliver invokes the callback synchronously regardless of shape. Used
// for connection-state replay, which must not interleave with the
// queue.
func (d *Dispatcher) Deliver(ev event.Event) {
	d.deliver([]event.Event{ev})
}

// Start launches the drain loop. It is a no-op in the direct shape.
func (d *Dispatcher) Start() {
	if d.direct || d.done != nil {
		return
	}
	d.done = make(chan struct{})
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-d.done:
				return
			case <-ticker.C:
				d.Flush()
			}
		}
	}()
}

// Stop halts the drain loop and discards any undelivered queued events.
// The drain goroutine is joined before the queue is torn down.
func (d *Dispatcher) Stop() {
	if d.done != nil {
		close(d.done)
		d.wg.Wait()
		d.done = nil
	}
	d.queueMu.Lock()
	d.queue = nil
	d.queueMu.Unlock()
}

// Flush pops the whole queue, coalesces axis duplicates, and delivers
// the survivors in arrival order. Exposed for tests; the drain loop
// calls it on every tick.
func (d *Dispatcher) Flush() {
	d.queueMu.Lock()
	if len(d.queue) == 0 {
		d.queueMu.Unlock()
		return
	}
	batch := d.queue
	d.queue = nil
	d.queueMu.Unlock()

	d.deliver(Coalesce(batch))
}

func (d *Dispatcher) deliver(events []event.Event) {
	d.cbMu.Lock()
	defer d.cbMu.Unlock()
	if d.cb == nil {
		return
	}
	for _, ev := range events {
		d.cb(ev)
	}
}
