package dispatch

import "github.com/inputkit/padbridge/internal/event"

type axisKey struct {
	id   string
	axis int
}

// Coalesce collapses same-device same-axis duplicates in a batch,
// keeping only the newest occurrence of each. Button and connection
// events pass through untouched: every discrete transition must remain
// observable. Survivors keep their arrival order.
//
// The batch is scanned in reverse so the first occurrence seen per key
// is the newest.
func Coalesce(batch []event.Event) []event.Event {
	seen := make(map[axisKey]bool)
	drop := make([]bool, len(batch))

	for i := len(batch) - 1; i >= 0; i-- {
		ax, ok := batch[i].(event.Axis)
		if !ok {
			continue
		}
		key := axisKey{id: ax.GamepadID, axis: ax.Axis}
		if seen[key] {
			drop[i] = true
			continue
		}
		seen[key] = true
	}

	out := batch[:0]
	for i, ev := range batch {
		if !drop[i] {
			out = append(out, ev)
		}
	}
	return out
}
