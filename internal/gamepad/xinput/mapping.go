// Package xinput polls the Windows controller API. Up to four
// controller slots exist; each is sampled at ~60Hz and diffed against
// its previous state.
package xinput

import "github.com/inputkit/padbridge/internal/standard"

// Stick and trigger thresholds, as documented for the API.
const (
	LeftThumbDeadzone  = 7849
	RightThumbDeadzone = 8689
	TriggerThreshold   = 30
)

// Button mask bits of the wGamepad field.
const (
	bitDpadUp        = 0x0001
	bitDpadDown      = 0x0002
	bitDpadLeft      = 0x0004
	bitDpadRight     = 0x0008
	bitStart         = 0x0010
	bitBack          = 0x0020
	bitLeftThumb     = 0x0040
	bitRightThumb    = 0x0080
	bitLeftShoulder  = 0x0100
	bitRightShoulder = 0x0200
	bitA             = 0x1000
	bitB             = 0x2000
	bitX             = 0x4000
	bitY             = 0x8000
)

// ButtonBit ties one mask bit to its standard button index.
type ButtonBit struct {
	Bit    uint16
	Button int
}

// ButtonBits lists every digital button the API reports, in mask-bit
// order. The guide button is not exposed through the public state call.
var ButtonBits = []ButtonBit{
	{bitDpadUp, standard.DpadUp},
	{bitDpadDown, standard.DpadDown},
	{bitDpadLeft, standard.DpadLeft},
	{bitDpadRight, standard.DpadRight},
	{bitStart, standard.Start},
	{bitBack, standard.Back},
	{bitLeftThumb, standard.LeftStickButton},
	{bitRightThumb, standard.RightStickButton},
	{bitLeftShoulder, standard.LeftShoulder},
	{bitRightShoulder, standard.RightShoulder},
	{bitA, standard.ButtonA},
	{bitB, standard.ButtonB},
	{bitX, standard.ButtonX},
	{bitY, standard.ButtonY},
}

// Gamepad mirrors XINPUT_GAMEPAD.
type Gamepad struct {
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	ThumbLX      int16
	ThumbLY      int16
	ThumbRX      int16
	ThumbRY      int16
}

// State mirrors XINPUT_STATE. The packet number changes whenever any
// control changes, so equal packet numbers mean the whole state can be
// skipped.
type State struct {
	PacketNumber uint32
	Gamepad      Gamepad
}

// ThumbX normalizes a horizontal thumbstick sample.
func ThumbX(raw int16, deadzone int16) float64 {
	return standard.Thumbstick(raw, deadzone)
}

// ThumbY normalizes a vertical thumbstick sample. The API reports up as
// positive; the standard layout has up negative, so the sign flips.
func ThumbY(raw int16, deadzone int16) float64 {
	return -standard.Thumbstick(raw, deadzone)
}

// Trigger normalizes a trigger sample with the documented threshold.
func Trigger(raw uint8) float64 {
	return standard.TriggerThreshold(raw, TriggerThreshold)
}

// TriggerPressed reports whether a raw trigger sample counts as
// pressed. Any travel beyond the threshold does.
func TriggerPressed(raw uint8) bool {
	return raw > TriggerThreshold
}
