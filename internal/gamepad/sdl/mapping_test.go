package sdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inputkit/padbridge/internal/standard"
)

func TestKnownDeviceLookup(t *testing.T) {
	assert.Equal(t, "xbox", GetMapping(0x045E, 0x028E).Name)
	assert.Equal(t, "playstation", GetMapping(0x054C, 0x0CE6).Name)
	assert.Equal(t, "switch_pro", GetMapping(0x057E, 0x2009).Name)
}

func TestUnknownDeviceFallsBackToGeneric(t *testing.T) {
	assert.Equal(t, "generic", GetMapping(0xDEAD, 0xBEEF).Name)
}

func TestPlayStationButtonLayout(t *testing.T) {
	m := GetMapping(0x054C, 0x09CC)
	assert.Equal(t, standard.ButtonA, m.Button(0), "cross")
	assert.Equal(t, standard.ButtonB, m.Button(1), "circle")
	assert.Equal(t, standard.Back, m.Button(4), "share")
	assert.Equal(t, standard.Guide, m.Button(5), "ps button")
	assert.Equal(t, standard.Start, m.Button(6), "options")
	assert.Equal(t, standard.LeftShoulder, m.Button(9), "l1")
}

func TestUnmappedButtonIndex(t *testing.T) {
	m := GetMapping(0x045E, 0x028E)
	assert.Equal(t, standard.Unmapped, m.Button(42))
}

func TestXboxAxisRoles(t *testing.T) {
	m := GetMapping(0x045E, 0x0B12)

	role, ok := m.Axis(1)
	require.True(t, ok)
	assert.False(t, role.trigger)
	assert.Equal(t, standard.LeftStickY, role.axis)

	role, ok = m.Axis(4)
	require.True(t, ok)
	assert.True(t, role.trigger)
	assert.Equal(t, 0, role.slot)
	assert.Equal(t, int32(-32768), role.rawMin)

	_, ok = m.Axis(9)
	assert.False(t, ok)
}

func TestSwitchProHasNoAnalogTriggers(t *testing.T) {
	m := GetMapping(0x057E, 0x2009)
	for i := int32(0); i < 8; i++ {
		if role, ok := m.Axis(i); ok {
			assert.False(t, role.trigger)
		}
	}
}
