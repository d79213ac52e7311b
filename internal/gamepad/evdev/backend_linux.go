package evdev

import (
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/inputkit/padbridge/internal/gamepad"
	"github.com/inputkit/padbridge/internal/hotplug"
	"github.com/inputkit/padbridge/internal/standard"
)

const (
	deviceDir    = "/dev/input"
	devicePrefix = "event"

	epsilon = 0.005

	// Normalized trigger travel beyond which the trigger button
	// reports pressed.
	triggerPressPoint = 0.5
)

// Backend reads kernel input nodes directly. Each qualifying node gets
// its own reader goroutine blocked on the node; hotplug arrivals and
// departures come from a directory watch.
type Backend struct {
	log  *slog.Logger
	dir  string
	pipe *gamepad.Pipeline

	watcher *hotplug.Watcher

	mu      sync.Mutex
	devices map[string]*device

	closing atomic.Bool
	wg      sync.WaitGroup
}

func New(log *slog.Logger) *Backend {
	return &Backend{
		log:     log,
		dir:     deviceDir,
		devices: make(map[string]*device),
	}
}

func (b *Backend) Name() string         { return "evdev" }
func (b *Backend) Shape() gamepad.Shape { return gamepad.Queued }
func (b *Backend) Epsilon() float64     { return epsilon }

// Start begins watching the device directory. Already-present nodes are
// probed synchronously before Start returns.
func (b *Backend) Start(p *gamepad.Pipeline) error {
	b.pipe = p
	b.closing.Store(false)

	w, err := hotplug.New(b.dir, devicePrefix, b.addDevice, b.removeDevice)
	if err != nil {
		return err
	}
	b.watcher = w
	return w.Start()
}

// Stop tears down the watcher and every reader goroutine. Devices still
// open at shutdown produce no disconnection events.
func (b *Backend) Stop() {
	b.closing.Store(true)
	if b.watcher != nil {
		b.watcher.Close()
		b.watcher = nil
	}

	b.mu.Lock()
	for _, d := range b.devices {
		d.close()
	}
	b.devices = make(map[string]*device)
	b.mu.Unlock()

	b.wg.Wait()
}

func (b *Backend) addDevice(path string) {
	b.mu.Lock()
	_, tracked := b.devices[path]
	b.mu.Unlock()
	if tracked {
		return
	}

	d, err := openDevice(path)
	if err != nil {
		if !errors.Is(err, errNotGamepad) {
			// Permission errors and open/probe races with removal
			// are routine here.
			b.log.Debug("skipping input node", "path", path, "error", err)
		}
		return
	}

	b.mu.Lock()
	if b.closing.Load() {
		b.mu.Unlock()
		d.close()
		return
	}
	b.devices[path] = d
	b.mu.Unlock()

	b.pipe.Connect(path, d.meta, d.caps)
	b.wg.Add(1)
	go b.readLoop(d)
}

// removeDevice closes the node; the reader goroutine observes the read
// failure and performs the actual deregistration.
func (b *Backend) removeDevice(path string) {
	b.mu.Lock()
	d, ok := b.devices[path]
	b.mu.Unlock()
	if ok {
		d.close()
	}
}

func (b *Backend) readLoop(d *device) {
	defer b.wg.Done()
	for {
		var ev inputEvent
		if err := binary.Read(d.file, binary.LittleEndian, &ev); err != nil {
			if !b.closing.Load() {
				if !errors.Is(err, io.EOF) {
					b.log.Debug("device read ended", "path", d.path, "error", err)
				}
				b.drop(d)
			}
			return
		}
		b.handle(d, ev)
	}
}

func (b *Backend) drop(d *device) {
	b.mu.Lock()
	_, tracked := b.devices[d.path]
	delete(b.devices, d.path)
	b.mu.Unlock()

	d.close()
	if tracked {
		b.pipe.Disconnect(d.path)
	}
}

func (b *Backend) handle(d *device, ev inputEvent) {
	switch ev.Type {
	case standard.EvSyn:
		if ev.Code == standard.SynDropped {
			b.log.Warn("kernel dropped input events, resynchronizing", "path", d.path)
		}
		d.resync.syn(ev.Code)

	case standard.EvKey:
		if !d.resync.streaming() {
			return
		}
		b.pipe.Button(d.path, standard.EvdevButton(ev.Code), ev.Value != 0)

	case standard.EvAbs:
		if !d.resync.streaming() {
			return
		}
		b.handleAbs(d, ev.Code, ev.Value)
	}
}

func (b *Backend) handleAbs(d *device, code uint16, value int32) {
	switch {
	case standard.IsEvdevHat(code):
		axis := gamepad.HatX
		if code == standard.AbsHat0Y {
			axis = gamepad.HatY
		}
		b.pipe.Hat(d.path, axis, int(value))

	case standard.IsEvdevTrigger(code):
		info, ok := d.abs[code]
		if !ok {
			return
		}
		v := standard.TriggerRange(value, info.Minimum, info.Maximum)
		b.pipe.Trigger(d.path, standard.EvdevTriggerSlot(code), v, v > triggerPressPoint)

	default:
		axis := standard.EvdevAxis(code)
		if axis == standard.Unmapped {
			return
		}
		info, ok := d.abs[code]
		if !ok {
			return
		}
		b.pipe.Axis(d.path, axis, standard.AbsRange(value, info.Minimum, info.Maximum))
	}
}
