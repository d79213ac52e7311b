package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	r := New("evdev")

	d0, ok := r.Add("/dev/input/event3", Meta{Name: "Pad A"}, nil)
	require.True(t, ok)
	d1, ok := r.Add("/dev/input/event5", Meta{Name: "Pad B"}, nil)
	require.True(t, ok)

	assert.Equal(t, "evdev_0", d0.PublicID)
	assert.Equal(t, "evdev_1", d1.PublicID)
}

func TestAddDeduplicatesByKey(t *testing.T) {
	r := New("evdev")

	_, ok := r.Add("/dev/input/event3", Meta{}, nil)
	require.True(t, ok)
	_, ok = r.Add("/dev/input/event3", Meta{}, nil)
	assert.False(t, ok, "second add for the same key must be a no-op")
	assert.Equal(t, 1, r.Len())
}

func TestRemoveIsIdempotent(t *testing.T) {
	r := New("evdev")
	r.Add("/dev/input/event3", Meta{Name: "Pad"}, nil)

	d, ok := r.Remove("/dev/input/event3")
	require.True(t, ok)
	assert.Equal(t, "Pad", d.Name)

	// A racing second notification for the same device must be a no-op.
	_, ok = r.Remove("/dev/input/event3")
	assert.False(t, ok)
}

func TestIDsNeverReused(t *testing.T) {
	r := New("evdev")

	for i := 0; i < 3; i++ {
		d, ok := r.Add("/dev/input/event3", Meta{}, nil)
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("evdev_%d", i), d.PublicID)
		_, ok = r.Remove("/dev/input/event3")
		require.True(t, ok)
	}
}

func TestListSnapshot(t *testing.T) {
	r := New("sdl")
	r.Add("js1", Meta{Name: "One", VendorID: 0x045e, ProductID: 0x02e0}, nil)
	r.Add("js2", Meta{Name: "Two"}, nil)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, Info{ID: "sdl_0", Name: "One", VendorID: 0x045e, ProductID: 0x02e0}, list[0])
	assert.Equal(t, Info{ID: "sdl_1", Name: "Two"}, list[1])
}

func TestClear(t *testing.T) {
	r := New("evdev")
	r.Add("a", Meta{}, nil)
	r.Add("b", Meta{}, nil)

	removed := r.Clear()
	assert.Len(t, removed, 2)
	assert.Empty(t, r.List())
}

func TestConcurrentListDuringMutation(t *testing.T) {
	r := New("evdev")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			key := fmt.Sprintf("dev%d", i%10)
			r.Add(key, Meta{}, nil)
			r.Remove(key)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			r.List()
			r.Len()
		}
	}()
	wg.Wait()
}
