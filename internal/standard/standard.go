// Package standard defines the W3C Standard Gamepad layout (17 buttons,
// 4 axes) and the pure mapping/normalization functions that translate raw
// backend codes and values into it.
//
// Button indices:
//
//	0 = a (bottom), 1 = b (right), 2 = x (left), 3 = y (top)
//	4 = leftShoulder, 5 = rightShoulder
//	6 = leftTrigger, 7 = rightTrigger
//	8 = back, 9 = start
//	10 = leftStickButton, 11 = rightStickButton
//	12 = dpadUp, 13 = dpadDown, 14 = dpadLeft, 15 = dpadRight
//	16 = guide
//
// Axis indices:
//
//	0 = leftStickX, 1 = leftStickY, 2 = rightStickX, 3 = rightStickY
//
// Triggers are not standard axes; the W3C model treats them as analog
// buttons (indices 6 and 7).
package standard

// W3C button indices.
const (
	ButtonA = iota
	ButtonB
	ButtonX
	ButtonY
	LeftShoulder
	RightShoulder
	LeftTrigger
	RightTrigger
	Back
	Start
	LeftStickButton
	RightStickButton
	DpadUp
	DpadDown
	DpadLeft
	DpadRight
	Guide

	ButtonCount = 17
)

// W3C axis indices.
const (
	LeftStickX = iota
	LeftStickY
	RightStickX
	RightStickY

	AxisCount = 4
)

// Unmapped is returned by mapping lookups for raw codes that have no
// standard-layout equivalent. Events for unmapped codes are dropped
// before construction.
const Unmapped = -1
