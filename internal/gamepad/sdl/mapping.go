// Package sdl reads gamepads through the SDL3 joystick API via purego
// bindings. SDL reports raw per-device button and axis indices, so a
// per-model mapping translates them to the standard layout.
package sdl

import "github.com/inputkit/padbridge/internal/standard"

// axisRole describes what one raw SDL axis index feeds: either a
// standard stick axis or an analog trigger slot.
type axisRole struct {
	axis    int // standard axis index; Unmapped for triggers
	trigger bool
	slot    int // trigger cache slot when trigger is set
	// Raw trigger range. Some devices rest at -32768, others at 0.
	rawMin, rawMax int32
}

// Mapping is the raw-index translation table for one controller model.
type Mapping struct {
	Name    string
	axes    map[int32]axisRole
	buttons map[int32]int
}

// Axis resolves a raw axis index.
func (m *Mapping) Axis(index int32) (axisRole, bool) {
	role, ok := m.axes[index]
	return role, ok
}

// Button resolves a raw button index to its standard button index, or
// Unmapped.
func (m *Mapping) Button(index int32) int {
	if b, ok := m.buttons[index]; ok {
		return b
	}
	return standard.Unmapped
}

func stickAxes() map[int32]axisRole {
	return map[int32]axisRole{
		0: {axis: standard.LeftStickX},
		1: {axis: standard.LeftStickY},
		2: {axis: standard.RightStickX},
		3: {axis: standard.RightStickY},
	}
}

func withTriggers(axes map[int32]axisRole, ltIndex, rtIndex int32) map[int32]axisRole {
	axes[ltIndex] = axisRole{axis: standard.Unmapped, trigger: true, slot: 0, rawMin: -32768, rawMax: 32767}
	axes[rtIndex] = axisRole{axis: standard.Unmapped, trigger: true, slot: 1, rawMin: -32768, rawMax: 32767}
	return axes
}

var xboxMapping = &Mapping{
	Name: "xbox",
	axes: withTriggers(stickAxes(), 4, 5),
	buttons: map[int32]int{
		0:  standard.ButtonA,
		1:  standard.ButtonB,
		2:  standard.ButtonX,
		3:  standard.ButtonY,
		4:  standard.LeftShoulder,
		5:  standard.RightShoulder,
		6:  standard.Back,
		7:  standard.Start,
		8:  standard.LeftStickButton,
		9:  standard.RightStickButton,
		10: standard.Guide,
	},
}

var playstationMapping = &Mapping{
	Name: "playstation",
	axes: withTriggers(stickAxes(), 4, 5),
	buttons: map[int32]int{
		0:  standard.ButtonA, // Cross
		1:  standard.ButtonB, // Circle
		2:  standard.ButtonX, // Square
		3:  standard.ButtonY, // Triangle
		4:  standard.Back,    // Share / Create
		5:  standard.Guide,   // PS button
		6:  standard.Start,   // Options
		7:  standard.LeftStickButton,
		8:  standard.RightStickButton,
		9:  standard.LeftShoulder,  // L1
		10: standard.RightShoulder, // R1
	},
}

var switchProMapping = &Mapping{
	Name: "switch_pro",
	axes: stickAxes(),
	buttons: map[int32]int{
		0:  standard.ButtonA,
		1:  standard.ButtonB,
		2:  standard.ButtonX,
		3:  standard.ButtonY,
		4:  standard.LeftShoulder,
		5:  standard.RightShoulder,
		6:  standard.Back,
		7:  standard.Start,
		8:  standard.LeftStickButton,
		9:  standard.RightStickButton,
		10: standard.Guide,
	},
}

var genericMapping = &Mapping{
	Name:    "generic",
	axes:    withTriggers(stickAxes(), 4, 5),
	buttons: xboxMapping.buttons,
}

type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*Mapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// GetMapping returns the mapping for a device identified by
// vendor/product id, falling back to the generic table.
func GetMapping(vendorID, productID uint16) *Mapping {
	if m, ok := knownDevices[deviceKey{vendorID, productID}]; ok {
		return m
	}
	return genericMapping
}
