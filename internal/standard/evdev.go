package standard

// Linux evdev event types and codes used by the kernel-device backends.
// Values are from linux/input-event-codes.h.
const (
	EvSyn = 0x00
	EvKey = 0x01
	EvAbs = 0x03

	SynReport  = 0
	SynDropped = 3

	BtnSouth   = 0x130
	BtnEast    = 0x131
	BtnNorth   = 0x133
	BtnWest    = 0x134
	BtnTL      = 0x136
	BtnTR      = 0x137
	BtnTL2     = 0x138
	BtnTR2     = 0x139
	BtnSelect  = 0x13a
	BtnStart   = 0x13b
	BtnMode    = 0x13c
	BtnThumbL  = 0x13d
	BtnThumbR  = 0x13e
	BtnDpadUp  = 0x220
	BtnDpadDn  = 0x221
	BtnDpadLt  = 0x222
	BtnDpadRt  = 0x223
	BtnTrigger = 0x120
	Btn1       = 0x101

	AbsX        = 0x00
	AbsY        = 0x01
	AbsZ        = 0x02
	AbsRX       = 0x03
	AbsRY       = 0x04
	AbsRZ       = 0x05
	AbsThrottle = 0x06
	AbsRudder   = 0x07
	AbsWheel    = 0x08
	AbsGas      = 0x09
	AbsBrake    = 0x0a
	AbsHat0X    = 0x10
	AbsHat0Y    = 0x11
	AbsMax      = 0x3f
)

var evdevButtons = map[uint16]int{
	BtnSouth:  ButtonA,
	BtnEast:   ButtonB,
	BtnWest:   ButtonX,
	BtnNorth:  ButtonY,
	BtnTL:     LeftShoulder,
	BtnTR:     RightShoulder,
	BtnTL2:    LeftTrigger,
	BtnTR2:    RightTrigger,
	BtnSelect: Back,
	BtnStart:  Start,
	BtnThumbL: LeftStickButton,
	BtnThumbR: RightStickButton,
	BtnDpadUp: DpadUp,
	BtnDpadDn: DpadDown,
	BtnDpadLt: DpadLeft,
	BtnDpadRt: DpadRight,
	BtnMode:   Guide,
}

// EvdevButton maps an evdev key code to its standard button index, or
// Unmapped if the code has no standard equivalent.
func EvdevButton(code uint16) int {
	if idx, ok := evdevButtons[code]; ok {
		return idx
	}
	return Unmapped
}

// EvdevAxis maps an evdev absolute-axis code to its standard axis index.
// Trigger and hat axes are not standard axes and return Unmapped.
func EvdevAxis(code uint16) int {
	switch code {
	case AbsX:
		return LeftStickX
	case AbsY:
		return LeftStickY
	case AbsRX:
		return RightStickX
	case AbsRY:
		return RightStickY
	}
	return Unmapped
}

// IsEvdevTrigger reports whether an evdev absolute-axis code is a
// trigger axis.
func IsEvdevTrigger(code uint16) bool {
	return code == AbsZ || code == AbsRZ
}

// EvdevTriggerSlot maps a trigger axis code to its throttle-cache slot
// (0 = left, 1 = right).
func EvdevTriggerSlot(code uint16) int {
	if code == AbsZ {
		return 0
	}
	return 1
}

// IsEvdevHat reports whether an evdev absolute-axis code is a d-pad hat
// axis.
func IsEvdevHat(code uint16) bool {
	return code == AbsHat0X || code == AbsHat0Y
}

// Canonical codes used by the gamepad capability probe. A device
// qualifies if it exposes at least one of these button codes or at
// least one of these axis codes; name heuristics are deliberately not
// used.
var (
	ProbeButtons = []uint16{BtnSouth, BtnTrigger, Btn1}
	ProbeAxes    = []uint16{AbsRX, AbsRY, AbsRZ, AbsThrottle, AbsRudder, AbsWheel, AbsGas, AbsBrake}
)
