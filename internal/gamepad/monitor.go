package gamepad

import (
	"log/slog"

	"github.com/inputkit/padbridge/internal/dispatch"
	"github.com/inputkit/padbridge/internal/event"
	"github.com/inputkit/padbridge/internal/registry"
)

// Monitor is the consumer-facing facade over one backend: it owns the
// device registry and the dispatcher, and exposes the event stream
// through a single callback.
type Monitor struct {
	backend Backend
	reg     *registry.Registry
	disp    *dispatch.Dispatcher
	pipe    *Pipeline
	log     *slog.Logger
	running bool
}

// New builds a monitor for the given backend. The dispatch strategy
// follows the backend's shape; analog change filtering uses the
// backend's epsilon.
func New(backend Backend, log *slog.Logger) *Monitor {
	reg := registry.New(backend.Name())
	var disp *dispatch.Dispatcher
	if backend.Shape() == Direct {
		disp = dispatch.NewDirect()
	} else {
		disp = dispatch.NewQueued(dispatch.DrainInterval)
	}
	return &Monitor{
		backend: backend,
		reg:     reg,
		disp:    disp,
		pipe: &Pipeline{
			reg:     reg,
			disp:    disp,
			epsilon: backend.Epsilon(),
			log:     log,
		},
		log: log,
	}
}

// Start registers cb as the event consumer and begins producing. Events
// may arrive on a dispatcher goroutine or on backend goroutines; cb
// must not block for long. Start is not idempotent; a stopped monitor
// may be started again.
func (m *Monitor) Start(cb func(event.Event)) error {
	if m.running {
		return nil
	}
	m.disp.Attach(cb)
	m.disp.Start()
	if err := m.backend.Start(m.pipe); err != nil {
		m.disp.Stop()
		m.disp.Detach()
		return err
	}
	m.running = true
	m.log.Info("monitor started", "backend", m.backend.Name())
	return nil
}

// Stop halts the backend and the dispatcher and forgets all devices.
// Undelivered queued events are discarded and no disconnection events
// are emitted for devices present at shutdown; the consumer is expected
// to treat its view as stale once Stop returns.
func (m *Monitor) Stop() {
	if !m.running {
		return
	}
	m.backend.Stop()
	m.disp.Stop()
	m.disp.Detach()
	m.reg.Clear()
	m.running = false
	m.log.Info("monitor stopped", "backend", m.backend.Name())
}

// ListGamepads returns a snapshot of the connected devices ordered by
// public id. It reads cached metadata only.
func (m *Monitor) ListGamepads() []registry.Info {
	return m.reg.List()
}

// EmitExistingDevices replays a connection event for every currently
// connected device through the consumer callback. Late-joining
// consumers use it to reconstruct connection state they missed.
func (m *Monitor) EmitExistingDevices() {
	for _, info := range m.reg.List() {
		m.disp.Deliver(event.NewConnection(info.ID, true, info.Name, info.VendorID, info.ProductID))
	}
}
