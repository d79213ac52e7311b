package sdl

import (
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/inputkit/padbridge/internal/gamepad"
	"github.com/inputkit/padbridge/internal/registry"
	"github.com/inputkit/padbridge/internal/standard"
)

const (
	epsilon     = 0.005
	pollDelayNS = 16_000_000 // ~60Hz

	triggerPressPoint = 0.5

	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *Mapping
	key      string
}

// Backend runs SDL's joystick subsystem on a locked OS thread and feeds
// its event stream into the pipeline. The joystick table is touched
// only from the run loop.
type Backend struct {
	log  *slog.Logger
	pipe *gamepad.Pipeline

	joysticks map[sdl.JoystickID]*joystickInfo

	done chan struct{}
	wg   sync.WaitGroup
}

func New(log *slog.Logger) *Backend {
	return &Backend{log: log}
}

func (b *Backend) Name() string         { return "sdl" }
func (b *Backend) Shape() gamepad.Shape { return gamepad.Queued }
func (b *Backend) Epsilon() float64     { return epsilon }

// Start spawns the run loop and blocks until SDL initialization has
// succeeded or failed.
func (b *Backend) Start(p *gamepad.Pipeline) error {
	b.pipe = p
	b.joysticks = make(map[sdl.JoystickID]*joystickInfo)
	b.done = make(chan struct{})

	initErr := make(chan error, 1)
	b.wg.Add(1)
	go b.run(initErr)
	return <-initErr
}

func (b *Backend) Stop() {
	close(b.done)
	b.wg.Wait()
}

func (b *Backend) run(initErr chan<- error) {
	defer b.wg.Done()

	// SDL requires all joystick API calls on one thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		initErr <- fmt.Errorf("sdl init: %s", sdl.GetError())
		return
	}
	defer sdl.Quit()
	initErr <- nil

	// Joysticks present before the event loop starts do not produce
	// added events.
	for _, id := range sdl.GetJoysticks() {
		b.openJoystick(id)
	}

	for {
		select {
		case <-b.done:
			b.closeAll()
			return
		default:
		}
		b.processEvents()
		sdl.DelayNS(pollDelayNS)
	}
}

func (b *Backend) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			b.openJoystick(event.JDevice().Which)

		case sdl.EventJoystickRemoved:
			b.removeJoystick(event.JDevice().Which)

		case sdl.EventJoystickButtonDown:
			be := event.JButton()
			b.handleButton(be.Which, int32(be.Button), true)

		case sdl.EventJoystickButtonUp:
			be := event.JButton()
			b.handleButton(be.Which, int32(be.Button), false)

		case sdl.EventJoystickAxisMotion:
			ae := event.JAxis()
			b.handleAxis(ae.Which, int32(ae.Axis), int16(ae.Value))

		case sdl.EventJoystickHatMotion:
			he := event.JHat()
			b.handleHat(he.Which, uint8(he.Value))
		}
	}
}

func (b *Backend) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := b.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		b.log.Warn("failed to open joystick", "instance", instanceID, "error", sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := GetMapping(vendorID, productID)

	info := &joystickInfo{
		joystick: js,
		mapping:  mapping,
		key:      strconv.Itoa(int(jsID)),
	}
	b.joysticks[jsID] = info

	b.log.Debug("joystick opened",
		"name", name,
		"mapping", mapping.Name,
		"axes", sdl.GetNumJoystickAxes(js),
		"buttons", sdl.GetNumJoystickButtons(js),
		"hats", sdl.GetNumJoystickHats(js))

	b.pipe.Connect(info.key, registry.Meta{
		Name:      name,
		VendorID:  vendorID,
		ProductID: productID,
	}, nil)
}

func (b *Backend) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := b.joysticks[instanceID]
	if !exists {
		return
	}
	sdl.CloseJoystick(info.joystick)
	delete(b.joysticks, instanceID)
	b.pipe.Disconnect(info.key)
}

func (b *Backend) closeAll() {
	for id, info := range b.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(b.joysticks, id)
	}
}

func (b *Backend) handleButton(instanceID sdl.JoystickID, index int32, pressed bool) {
	info, exists := b.joysticks[instanceID]
	if !exists {
		return
	}
	b.pipe.Button(info.key, info.mapping.Button(index), pressed)
}

func (b *Backend) handleAxis(instanceID sdl.JoystickID, index int32, raw int16) {
	info, exists := b.joysticks[instanceID]
	if !exists {
		return
	}
	role, ok := info.mapping.Axis(index)
	if !ok {
		return
	}
	if role.trigger {
		v := standard.TriggerRange(int32(raw), role.rawMin, role.rawMax)
		b.pipe.Trigger(info.key, role.slot, v, v > triggerPressPoint)
		return
	}
	b.pipe.Axis(info.key, role.axis, standard.StickAxis(raw))
}

func (b *Backend) handleHat(instanceID sdl.JoystickID, mask uint8) {
	info, exists := b.joysticks[instanceID]
	if !exists {
		return
	}
	b.pipe.Hat(info.key, gamepad.HatX, hatAxis(mask, hatLeft, hatRight))
	b.pipe.Hat(info.key, gamepad.HatY, hatAxis(mask, hatUp, hatDown))
}

// hatAxis collapses one axis of the hat bitmask into a signed
// direction.
func hatAxis(mask, negBit, posBit uint8) int {
	switch {
	case mask&negBit != 0:
		return -1
	case mask&posBit != 0:
		return 1
	default:
		return 0
	}
}
