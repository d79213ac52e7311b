package evdev

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/inputkit/padbridge/internal/registry"
	"github.com/inputkit/padbridge/internal/standard"
)

// errNotGamepad marks device nodes that opened fine but failed the
// capability probe (mice, keyboards, touchpads).
var errNotGamepad = errors.New("not a gamepad")

// input_event as the kernel writes it on 64-bit platforms: struct
// timeval followed by type, code, value.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// inputID mirrors struct input_id.
type inputID struct {
	BusType uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// absInfo mirrors struct input_absinfo.
type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// EVIOCG* request numbers, built with the kernel's _IOC scheme
// (read direction, magic 'E').
const iocRead = 2

func ioc(nr, size uintptr) uintptr {
	return iocRead<<30 | size<<16 | 'E'<<8 | nr
}

func eviocgid() uintptr            { return ioc(0x02, unsafe.Sizeof(inputID{})) }
func eviocgname(n uintptr) uintptr { return ioc(0x06, n) }
func eviocgbit(ev, n uintptr) uintptr {
	return ioc(0x20+ev, n)
}
func eviocgabs(abs uintptr) uintptr { return ioc(0x40+abs, unsafe.Sizeof(absInfo{})) }

func ioctl(f *os.File, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, uintptr(arg))
	if errno != 0 {
		return fmt.Errorf("ioctl 0x%x: %w", req, errno)
	}
	return nil
}

// bitmask wraps an EVIOCGBIT result.
type bitmask []byte

func (b bitmask) has(code uint16) bool {
	byteIdx := int(code) / 8
	if byteIdx >= len(b) {
		return false
	}
	return b[byteIdx]>>(code%8)&1 == 1
}

// device is one opened /dev/input/event* node.
type device struct {
	path string
	file *os.File
	meta registry.Meta
	caps map[uint16]bool
	abs  map[uint16]absInfo

	resync resync
}

// openDevice opens a node, reads its identity and capability bitmaps,
// and runs the gamepad probe. Non-gamepad nodes return errNotGamepad.
// cstring cuts a kernel-filled byte buffer at its first NUL. Bytes past
// the terminator are unspecified, not necessarily zero.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func openDevice(path string) (*device, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}

	d := &device{path: path, file: f}
	if err := d.identify(); err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

func (d *device) identify() error {
	var name [256]byte
	if err := ioctl(d.file, eviocgname(uintptr(len(name))), unsafe.Pointer(&name[0])); err != nil {
		return err
	}
	var id inputID
	if err := ioctl(d.file, eviocgid(), unsafe.Pointer(&id)); err != nil {
		return err
	}
	d.meta = registry.Meta{
		Name:      cstring(name[:]),
		VendorID:  id.Vendor,
		ProductID: id.Product,
	}

	keyBits := make(bitmask, (0x2ff+7)/8+1)
	if err := ioctl(d.file, eviocgbit(standard.EvKey, uintptr(len(keyBits))), unsafe.Pointer(&keyBits[0])); err != nil {
		return err
	}
	absBits := make(bitmask, (standard.AbsMax+7)/8+1)
	if err := ioctl(d.file, eviocgbit(standard.EvAbs, uintptr(len(absBits))), unsafe.Pointer(&absBits[0])); err != nil {
		return err
	}

	if !isGamepad(keyBits, absBits) {
		return errNotGamepad
	}

	d.caps = make(map[uint16]bool)
	for code := uint16(0x100); code <= 0x2ff; code++ {
		if keyBits.has(code) {
			d.caps[code] = true
		}
	}

	d.abs = make(map[uint16]absInfo)
	for code := uint16(0); code <= standard.AbsMax; code++ {
		if !absBits.has(code) {
			continue
		}
		var info absInfo
		if err := ioctl(d.file, eviocgabs(uintptr(code)), unsafe.Pointer(&info)); err != nil {
			return err
		}
		d.abs[code] = info
	}
	return nil
}

// isGamepad is the capability probe: a node qualifies if it exposes any
// of the canonical gamepad/joystick button codes or any of the
// joystick-class axes. Device names are never consulted.
func isGamepad(keyBits, absBits bitmask) bool {
	for _, code := range standard.ProbeButtons {
		if keyBits.has(code) {
			return true
		}
	}
	for _, code := range standard.ProbeAxes {
		if absBits.has(code) {
			return true
		}
	}
	return false
}

// close releases the node. Closing also unblocks the reader goroutine
// parked in a pending read on the file.
func (d *device) close() {
	d.file.Close()
}
