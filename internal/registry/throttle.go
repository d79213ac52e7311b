package registry

import "math"

// AxisChanged reports whether a new normalized stick-axis value differs
// from the last emitted one by at least epsilon, updating the cache when
// it does. The cache starts as NaN, which never compares under epsilon,
// so the first sample on a fresh channel always emits.
func (d *Device) AxisChanged(axis int, value, epsilon float64) bool {
	if axis < 0 || axis >= len(d.lastAxis) {
		return false
	}
	last := d.lastAxis[axis]
	if !math.IsNaN(last) && math.Abs(value-last) < epsilon {
		return false
	}
	d.lastAxis[axis] = value
	return true
}

// TriggerChanged is AxisChanged for the two analog trigger channels
// (slot 0 = left, 1 = right).
func (d *Device) TriggerChanged(slot int, value, epsilon float64) bool {
	if slot < 0 || slot >= len(d.lastTrigger) {
		return false
	}
	last := d.lastTrigger[slot]
	if !math.IsNaN(last) && math.Abs(value-last) < epsilon {
		return false
	}
	d.lastTrigger[slot] = value
	return true
}
