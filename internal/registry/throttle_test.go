package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 0.005

func newDevice(t *testing.T) *Device {
	t.Helper()
	r := New("test")
	d, ok := r.Add("key", Meta{}, nil)
	require.True(t, ok)
	return d
}

func TestFirstSampleAlwaysEmits(t *testing.T) {
	d := newDevice(t)

	// Even a rest-position sample must emit the first time.
	assert.True(t, d.AxisChanged(0, 0.0, eps))
	assert.True(t, d.TriggerChanged(0, 0.0, eps))
}

func TestAxisSuppressionUnderEpsilon(t *testing.T) {
	d := newDevice(t)

	require.True(t, d.AxisChanged(1, 0.5, eps))
	assert.False(t, d.AxisChanged(1, 0.5+eps/2, eps))
	assert.False(t, d.AxisChanged(1, 0.5-eps/2, eps))
	assert.True(t, d.AxisChanged(1, 0.5+2*eps, eps))
}

func TestCacheUpdatesOnEmission(t *testing.T) {
	d := newDevice(t)

	require.True(t, d.AxisChanged(2, 0.0, eps))
	require.True(t, d.AxisChanged(2, 0.1, eps))
	// Comparison is against the last emitted value, not the first.
	assert.False(t, d.AxisChanged(2, 0.1+eps/2, eps))
}

func TestChannelsAreIndependent(t *testing.T) {
	d := newDevice(t)

	require.True(t, d.AxisChanged(0, 0.5, eps))
	assert.True(t, d.AxisChanged(1, 0.5, eps), "axis 1 has its own cache")
	assert.True(t, d.TriggerChanged(0, 0.5, eps), "triggers have their own cache")
	assert.True(t, d.TriggerChanged(1, 0.5, eps))
}

func TestOutOfRangeChannels(t *testing.T) {
	d := newDevice(t)

	assert.False(t, d.AxisChanged(-1, 0.5, eps))
	assert.False(t, d.AxisChanged(4, 0.5, eps))
	assert.False(t, d.TriggerChanged(2, 0.5, eps))
}
