package xinput

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/inputkit/padbridge/internal/gamepad"
	"github.com/inputkit/padbridge/internal/registry"
	"github.com/inputkit/padbridge/internal/standard"
)

const (
	maxControllers = 4
	epsilon        = 0.001
	pollInterval   = 16 * time.Millisecond
)

var (
	modXInput          = windows.NewLazySystemDLL("xinput1_4.dll")
	procXInputGetState = modXInput.NewProc("XInputGetState")
)

// The API does not report device identity, only slot occupancy, so
// every controller announces with the same metadata.
var slotMeta = registry.Meta{
	Name:      "Xbox Controller",
	VendorID:  0x045E,
	ProductID: 0x02E0,
}

type slot struct {
	key       string
	connected bool
	packet    uint32
	pad       Gamepad
}

// Backend polls the four controller slots on a ticker.
type Backend struct {
	log  *slog.Logger
	pipe *gamepad.Pipeline

	slots [maxControllers]slot

	done chan struct{}
	wg   sync.WaitGroup
}

func New(log *slog.Logger) *Backend {
	return &Backend{log: log}
}

func (b *Backend) Name() string         { return "xinput" }
func (b *Backend) Shape() gamepad.Shape { return gamepad.Queued }
func (b *Backend) Epsilon() float64     { return epsilon }

func (b *Backend) Start(p *gamepad.Pipeline) error {
	if err := procXInputGetState.Find(); err != nil {
		return fmt.Errorf("controller api unavailable: %w", err)
	}

	b.pipe = p
	b.done = make(chan struct{})
	for i := range b.slots {
		b.slots[i] = slot{key: "slot" + strconv.Itoa(i)}
	}

	b.wg.Add(1)
	go b.run()
	return nil
}

func (b *Backend) Stop() {
	close(b.done)
	b.wg.Wait()
}

func (b *Backend) run() {
	defer b.wg.Done()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-ticker.C:
			for i := range b.slots {
				b.pollSlot(uint32(i), &b.slots[i])
			}
		}
	}
}

func (b *Backend) pollSlot(index uint32, s *slot) {
	var st State
	r1, _, _ := procXInputGetState.Call(uintptr(index), uintptr(unsafe.Pointer(&st)))
	if r1 != uintptr(windows.NO_ERROR) {
		if s.connected {
			s.connected = false
			b.pipe.Disconnect(s.key)
		}
		return
	}

	if !s.connected {
		s.connected = true
		s.pad = Gamepad{}
		// Force the first poll to emit the full state.
		s.packet = st.PacketNumber - 1
		b.pipe.Connect(s.key, slotMeta, nil)
	}

	if st.PacketNumber == s.packet {
		return
	}
	s.packet = st.PacketNumber

	b.emitChanges(s, st.Gamepad)
	s.pad = st.Gamepad
}

func (b *Backend) emitChanges(s *slot, cur Gamepad) {
	changed := s.pad.Buttons ^ cur.Buttons
	for _, bb := range ButtonBits {
		if changed&bb.Bit != 0 {
			b.pipe.Button(s.key, bb.Button, cur.Buttons&bb.Bit != 0)
		}
	}

	// Analog channels go through the pipeline on every packet; the
	// epsilon filter suppresses the unchanged ones.
	b.pipe.Trigger(s.key, 0, Trigger(cur.LeftTrigger), TriggerPressed(cur.LeftTrigger))
	b.pipe.Trigger(s.key, 1, Trigger(cur.RightTrigger), TriggerPressed(cur.RightTrigger))

	b.pipe.Axis(s.key, standard.LeftStickX, ThumbX(cur.ThumbLX, LeftThumbDeadzone))
	b.pipe.Axis(s.key, standard.LeftStickY, ThumbY(cur.ThumbLY, LeftThumbDeadzone))
	b.pipe.Axis(s.key, standard.RightStickX, ThumbX(cur.ThumbRX, RightThumbDeadzone))
	b.pipe.Axis(s.key, standard.RightStickY, ThumbY(cur.ThumbRY, RightThumbDeadzone))
}
