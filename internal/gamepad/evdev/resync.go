// Package evdev reads gamepads straight from the kernel input device
// nodes under /dev/input.
package evdev

import "github.com/inputkit/padbridge/internal/standard"

// resync tracks whether the kernel event stream for one device is
// trustworthy. When the kernel overruns its event buffer it inserts
// SYN_DROPPED, after which everything up to the next SYN_REPORT is a
// partial picture and must not be emitted.
type resync struct {
	desynced bool
}

// syn feeds a SYN_* code into the state machine.
func (r *resync) syn(code uint16) {
	switch code {
	case standard.SynDropped:
		r.desynced = true
	case standard.SynReport:
		r.desynced = false
	}
}

// streaming reports whether non-SYN events may currently be emitted.
func (r *resync) streaming() bool {
	return !r.desynced
}
