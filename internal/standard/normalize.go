package standard

// StickAxis normalizes a signed 16-bit stick value (-32768..32767) to
// -1.0..1.0. The negative extreme is clamped to -32767 first so the
// output range is exactly symmetric.
func StickAxis(raw int16) float64 {
	if raw < -32767 {
		raw = -32767
	}
	return float64(raw) / 32767.0
}

// AbsRange normalizes a raw value against a device-reported calibration
// range to -1.0..1.0. A zero-width range normalizes to 0.
func AbsRange(raw, min, max int32) float64 {
	if max == min {
		return 0
	}
	v := 2.0*float64(raw-min)/float64(max-min) - 1.0
	return clamp(v, -1, 1)
}

// TriggerRange normalizes a raw trigger value against a device-reported
// calibration range to 0.0..1.0. A zero-width range normalizes to 0.
func TriggerRange(raw, min, max int32) float64 {
	if max == min {
		return 0
	}
	v := float64(raw-min) / float64(max-min)
	return clamp(v, 0, 1)
}

// Thumbstick normalizes a signed 16-bit stick value with a dead zone:
// values within ±deadZone normalize to 0, and the remaining span is
// rescaled so the output still covers the full -1.0..1.0 range.
func Thumbstick(raw int16, deadZone int16) float64 {
	v := float64(raw)
	dz := float64(deadZone)

	if v >= -dz && v <= dz {
		return 0
	}

	// Positive and negative extremes differ by one; use the matching
	// magnitude so both directions reach exactly ±1.
	maxVal := 32767.0
	sign := 1.0
	if v < 0 {
		maxVal = 32768.0
		sign = -1.0
		v = -v
	}
	return clamp(sign*(v-dz)/(maxVal-dz), -1, 1)
}

// TriggerThreshold normalizes an 8-bit trigger value with a rest
// threshold: values at or below the threshold normalize to exactly 0,
// and the remaining span scales linearly to 1.0 at 255.
func TriggerThreshold(raw, threshold uint8) float64 {
	if raw <= threshold {
		return 0
	}
	v := float64(raw)
	t := float64(threshold)
	return clamp((v-t)/(255.0-t), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
