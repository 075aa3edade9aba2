package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

var defaultGrid = []string{"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}

func ts(values ...string) []types.TimeString {
	out := make([]types.TimeString, len(values))
	for i, v := range values {
		out[i] = types.MustTimeString(v)
	}
	return out
}

func TestNewSlotGrid(t *testing.T) {
	grid, err := NewSlotGrid(defaultGrid)
	require.NoError(t, err)

	assert.Equal(t, 8, grid.Len())
	assert.Equal(t, ts(defaultGrid...), grid.Slots())
}

func TestNewSlotGrid_SortsSlots(t *testing.T) {
	grid, err := NewSlotGrid([]string{"15:00", "09:00", "12:00"})
	require.NoError(t, err)

	assert.Equal(t, ts("09:00", "12:00", "15:00"), grid.Slots())
}

func TestNewSlotGrid_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		slots []string
	}{
		{"empty", nil},
		{"malformed", []string{"10"}},
		{"not on the hour", []string{"10:30"}},
		{"duplicate", []string{"10:00", "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlotGrid(tt.slots)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestSlotGrid_Contains(t *testing.T) {
	grid, err := NewSlotGrid(defaultGrid)
	require.NoError(t, err)

	assert.True(t, grid.Contains("10:00"))
	assert.True(t, grid.Contains("17:00"))
	assert.False(t, grid.Contains("09:00"))
	assert.False(t, grid.Contains("18:00"))
	assert.False(t, grid.Contains("10:30"))
}

func TestSlotGrid_Available(t *testing.T) {
	grid, err := NewSlotGrid(defaultGrid)
	require.NoError(t, err)

	t.Run("no bookings returns full grid", func(t *testing.T) {
		assert.Equal(t, grid.Slots(), grid.Available(nil))
	})

	t.Run("taken slots removed in grid order", func(t *testing.T) {
		got := grid.Available(ts("17:00", "10:00", "13:00"))
		assert.Equal(t, ts("11:00", "12:00", "14:00", "15:00", "16:00"), got)
	})

	t.Run("fully booked returns empty, not nil", func(t *testing.T) {
		got := grid.Available(grid.Slots())
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("taken outside the grid ignored", func(t *testing.T) {
		got := grid.Available(ts("08:00"))
		assert.Equal(t, grid.Slots(), got)
	})

	t.Run("complement covers the grid", func(t *testing.T) {
		taken := ts("11:00", "16:00")
		available := grid.Available(taken)

		union := make(map[types.TimeString]int)
		for _, s := range available {
			union[s]++
		}
		for _, s := range taken {
			union[s]++
		}

		assert.Len(t, union, grid.Len())
		for _, count := range union {
			assert.Equal(t, 1, count, "available and taken must be disjoint")
		}
	})
}

func TestSlotGrid_SlotsReturnsCopy(t *testing.T) {
	grid, err := NewSlotGrid(defaultGrid)
	require.NoError(t, err)

	slots := grid.Slots()
	slots[0] = "23:00"

	assert.Equal(t, types.TimeString("10:00"), grid.Slots()[0])
}
