// Package devmon reads gamepads through the evdev device-monitor
// library instead of raw kernel reads. The library owns the file
// handles and the event decoding; this backend only maps its stream
// onto the canonical layout. Events are delivered directly, with no
// drain queue: the library already paces the stream per device.
package devmon

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/kenshaw/evdev"

	"github.com/inputkit/padbridge/internal/gamepad"
	"github.com/inputkit/padbridge/internal/hotplug"
	"github.com/inputkit/padbridge/internal/registry"
	"github.com/inputkit/padbridge/internal/standard"
)

const (
	deviceDir    = "/dev/input"
	devicePrefix = "event"

	epsilon = 0.005

	triggerPressPoint = 0.5
)

var errNotGamepad = errors.New("not a gamepad")

type device struct {
	path   string
	handle *evdev.Evdev
	abs    map[evdev.AbsoluteType]evdev.Axis
	cancel context.CancelFunc
}

// Backend wraps the device-monitor library.
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

func (b *Backend) Name() string         { return "devmon" }
func (b *Backend) Shape() gamepad.Shape { return gamepad.Direct }
func (b *Backend) Epsilon() float64     { return epsilon }

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

func (b *Backend) Stop() {
	b.closing.Store(true)
	if b.watcher != nil {
		b.watcher.Close()
		b.watcher = nil
	}

	b.mu.Lock()
	for _, d := range b.devices {
		d.cancel()
		d.handle.Close()
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

	d, meta, caps, err := openDevice(path)
	if err != nil {
		if !errors.Is(err, errNotGamepad) {
			b.log.Debug("skipping input node", "path", path, "error", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	b.mu.Lock()
	if b.closing.Load() {
		b.mu.Unlock()
		cancel()
		d.handle.Close()
		return
	}
	b.devices[path] = d
	b.mu.Unlock()

	b.pipe.Connect(path, meta, caps)
	b.wg.Add(1)
	go b.consume(ctx, d)
}

func (b *Backend) removeDevice(path string) {
	b.mu.Lock()
	d, ok := b.devices[path]
	b.mu.Unlock()
	if ok {
		d.cancel()
		d.handle.Close()
	}
}

// openDevice opens a node through the library and runs the capability
// probe against its reported key and axis sets.
func openDevice(path string) (*device, registry.Meta, map[uint16]bool, error) {
	h, err := evdev.OpenFile(path)
	if err != nil {
		return nil, registry.Meta{}, nil, err
	}

	keys := h.KeyTypes()
	abs := h.AbsoluteTypes()
	if !isGamepad(keys, abs) {
		h.Close()
		return nil, registry.Meta{}, nil, errNotGamepad
	}

	id := h.ID()
	meta := registry.Meta{
		Name:      h.Name(),
		VendorID:  id.Vendor,
		ProductID: id.Product,
	}
	caps := make(map[uint16]bool, len(keys))
	for k := range keys {
		caps[uint16(k)] = true
	}

	return &device{path: path, handle: h, abs: abs}, meta, caps, nil
}

func isGamepad(keys map[evdev.KeyType]bool, abs map[evdev.AbsoluteType]evdev.Axis) bool {
	for _, code := range standard.ProbeButtons {
		if _, ok := keys[evdev.KeyType(code)]; ok {
			return true
		}
	}
	for _, code := range standard.ProbeAxes {
		if _, ok := abs[evdev.AbsoluteType(code)]; ok {
			return true
		}
	}
	return false
}

func (b *Backend) consume(ctx context.Context, d *device) {
	defer b.wg.Done()
	ch := d.handle.Poll(ctx)
	for env := range ch {
		if env == nil {
			break
		}
		b.handle(d, env.Event.Type, env.Event.Code, env.Event.Value)
	}
	if b.closing.Load() {
		return
	}
	b.drop(d)
}

func (b *Backend) drop(d *device) {
	b.mu.Lock()
	_, tracked := b.devices[d.path]
	delete(b.devices, d.path)
	b.mu.Unlock()

	d.cancel()
	d.handle.Close()
	if tracked {
		b.pipe.Disconnect(d.path)
	}
}

func (b *Backend) handle(d *device, typ evdev.EventType, code uint16, value int32) {
	switch typ {
	case evdev.EventKey:
		b.pipe.Button(d.path, standard.EvdevButton(code), value != 0)

	case evdev.EventAbsolute:
		b.handleAbs(d, code, value)
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
		info, ok := d.abs[evdev.AbsoluteType(code)]
		if !ok {
			return
		}
		v := standard.TriggerRange(value, info.Min, info.Max)
		b.pipe.Trigger(d.path, standard.EvdevTriggerSlot(code), v, v > triggerPressPoint)

	default:
		axis := standard.EvdevAxis(code)
		if axis == standard.Unmapped {
			return
		}
		info, ok := d.abs[evdev.AbsoluteType(code)]
		if !ok {
			return
		}
		b.pipe.Axis(d.path, axis, standard.AbsRange(value, info.Min, info.Max))
	}
}
