package domain

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

// SlotGrid фиксированная дневная сетка часовых слотов, отсортированная по времени
type SlotGrid struct {
	slots []types.TimeString
	index map[types.TimeString]struct{}
}

// NewSlotGrid создает сетку из строк "HH:MM".
// Слоты должны быть на целый час и не повторяться
func NewSlotGrid(slots []string) (SlotGrid, error) {
	if len(slots) == 0 {
		return SlotGrid{}, fmt.Errorf("%w: empty grid", ErrInvalidGrid)
	}

	grid := SlotGrid{
		slots: make([]types.TimeString, 0, len(slots)),
		index: make(map[types.TimeString]struct{}, len(slots)),
	}

	for _, s := range slots {
		slot, err := types.NewTimeStringFromString(s)
		if err != nil {
			return SlotGrid{}, fmt.Errorf("%w: %q: %v", ErrInvalidGrid, s, err)
		}
		if !slot.IsOnTheHour() {
			return SlotGrid{}, fmt.Errorf("%w: %q is not on the hour", ErrInvalidGrid, s)
		}
		if _, dup := grid.index[slot]; dup {
			return SlotGrid{}, fmt.Errorf("%w: %q is duplicated", ErrInvalidGrid, s)
		}
		grid.index[slot] = struct{}{}
		grid.slots = append(grid.slots, slot)
	}

	sort.Slice(grid.slots, func(i, j int) bool {
		return grid.slots[i].IsBefore(grid.slots[j])
	})

	return grid, nil
}

// Contains returns true if the slot belongs to the grid
func (g SlotGrid) Contains(slot types.TimeString) bool {
	_, ok := g.index[slot]
	return ok
}

// Slots возвращает копию сетки
func (g SlotGrid) Slots() []types.TimeString {
	out := make([]types.TimeString, len(g.slots))
	copy(out, g.slots)
	return out
}

// Len количество слотов в сетке
func (g SlotGrid) Len() int {
	return len(g.slots)
}

// Available возвращает слоты сетки без занятых, сохраняя порядок сетки.
// Занятые слоты вне сетки игнорируются
func (g SlotGrid) Available(taken []types.TimeString) []types.TimeString {
	busy := make(map[types.TimeString]struct{}, len(taken))
	for _, slot := range taken {
		busy[slot] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(g.slots))
	for _, slot := range g.slots {
		if _, ok := busy[slot]; !ok {
			available = append(available, slot)
		}
	}

	return available
}
