package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityGrid_BitstringRoundTrip(t *testing.T) {
	grid := AvailabilityGrid{}
	grid[0][0] = true              // понедельник 08:00
	grid[1][3] = true              // вторник 11:00
	grid[6][11] = true             // воскресенье 19:00, последний бит
	grid.Toggle(3, 5)              // четверг 13:00
	grid.Toggle(3, 5)              // и обратно
	require.Equal(t, 3, grid.Count())

	bits := grid.Bitstring()
	require.Len(t, bits, AvailabilityDays*AvailabilitySlots)
	assert.Equal(t, byte('1'), bits[0])
	assert.Equal(t, byte('1'), bits[1*AvailabilitySlots+3])
	assert.Equal(t, byte('1'), bits[len(bits)-1])

	parsed, err := ParseAvailability(bits)
	require.NoError(t, err)
	assert.Equal(t, grid, parsed)
}

func TestFullAvailability(t *testing.T) {
	grid := FullAvailability()
	assert.Equal(t, AvailabilityDays*AvailabilitySlots, grid.Count())
	assert.Equal(t, strings.Repeat("1", 84), grid.Bitstring())
}

func TestParseAvailability_Errors(t *testing.T) {
	tests := []struct {
		name string
		bits string
	}{
		{name: "too short", bits: strings.Repeat("0", 83)},
		{name: "too long", bits: strings.Repeat("0", 85)},
		{name: "empty", bits: ""},
		{name: "invalid character", bits: strings.Repeat("0", 83) + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAvailability(tt.bits)
			assert.Error(t, err)
		})
	}
}

func TestAvailabilityGrid_Toggle(t *testing.T) {
	grid := AvailabilityGrid{}

	grid.Toggle(2, 4)
	assert.True(t, grid[2][4])
	grid.Toggle(2, 4)
	assert.False(t, grid[2][4])

	// За границами — no-op, не паника
	grid.Toggle(-1, 0)
	grid.Toggle(7, 0)
	grid.Toggle(0, 12)
	assert.Equal(t, 0, grid.Count())
}

func TestAvailabilityGrid_SetAll(t *testing.T) {
	grid := AvailabilityGrid{}
	grid.SetAll(true)
	assert.Equal(t, 84, grid.Count())
	grid.SetAll(false)
	assert.Equal(t, 0, grid.Count())
}

func TestNormalizeCourseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CS 2110", "cs2110"},
		{"  cs 2110  ", "cs2110"},
		{"CS2110", "cs2110"},
		{"Math 49 40", "math4940"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCourseNumber(tt.in), "input %q", tt.in)
	}
}
