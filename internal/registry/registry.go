// Package registry owns the set of connected gamepads. A device exists
// in the registry iff it is currently connected; public ids are assigned
// at registration and never reused for the lifetime of the process.
package registry

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Meta is the identification data cached for a device at connect time.
type Meta struct {
	Name      string
	VendorID  uint16
	ProductID uint16
}

// Info is the snapshot entry returned by List; it matches the
// listGamepads wire shape.
type Info struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VendorID  uint16 `json:"vendorId"`
	ProductID uint16 `json:"productId"`
}

// Device is one connected gamepad. The public id is immutable; the
// throttle caches are touched only by the producing backend and need no
// locking of their own.
type Device struct {
	PublicID string
	Meta

	// Raw codes the device exposes, cached at connect time so event
	// handling never re-queries the kernel. May be nil for backends
	// whose capability set is fixed.
	Caps map[uint16]bool

	lastAxis    [4]float64
	lastTrigger [2]float64
}

// Registry is the device table. Reads (List, Get, Each) may run
// concurrently with mutation from the producer side.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]*Device
	prefix  string
	next    int
}

// New creates an empty registry. Public ids are formed as
// "<prefix>_<n>" with a counter that only ever increments.
func New(prefix string) *Registry {
	return &Registry{
		devices: make(map[string]*Device),
		prefix:  prefix,
	}
}

// Add registers a device under its backend-native key. It is a no-op
// returning false if the key is already tracked. The returned device
// has a freshly allocated public id and unset throttle caches, so the
// first analog sample on every channel always emits.
func (r *Registry) Add(key string, meta Meta, caps map[uint16]bool) (*Device, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.devices[key]; ok {
		return nil, false
	}

	d := &Device{
		PublicID: fmt.Sprintf("%s_%d", r.prefix, r.next),
		Meta:     meta,
		Caps:     caps,
	}
	r.next++
	for i := range d.lastAxis {
		d.lastAxis[i] = math.NaN()
	}
	for i := range d.lastTrigger {
		d.lastTrigger[i] = math.NaN()
	}

	r.devices[key] = d
	return d, true
}

// Remove drops a device and returns it so the caller can emit a
// disconnection event from its cached metadata. It is a no-op returning
// false for unknown keys: disconnection notifications must be
// idempotent because an I/O error and a hotplug delete may race for the
// same device.
func (r *Registry) Remove(key string) (*Device, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[key]
	if !ok {
		return nil, false
	}
	delete(r.devices, key)
	return d, true
}

// Get looks up a device by its backend-native key.
func (r *Registry) Get(key string) (*Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[key]
	return d, ok
}

// List returns a point-in-time snapshot of the registered devices,
// ordered by public id. It reads only cached metadata and never touches
// device I/O.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, Info{
			ID:        d.PublicID,
			Name:      d.Name,
			VendorID:  d.VendorID,
			ProductID: d.ProductID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clear empties the registry and returns the removed devices. Used on
// shutdown after the producer has been joined.
func (r *Registry) Clear() []*Device {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Device, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, d)
	}
	r.devices = make(map[string]*Device)
	return out
}

// Len reports the number of registered devices.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}
