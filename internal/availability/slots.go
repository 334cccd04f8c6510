package availability

import "fmt"

// Slot интервал [Start, End) в формате "часы.минуты"
type Slot struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SlotOf переводит интервал в минутах от полуночи в Slot
func SlotOf(iv Interval[int]) Slot {
	return Slot{Start: MinutesToDecimal(iv.Start), End: MinutesToDecimal(iv.End)}
}

// GenerateDailySlots нарезает рабочее окно на слоты фиксированной длины.
// Неполный хвостовой слот не выдаётся.
func GenerateDailySlots(workStart, workEnd float64, durationMinutes int) ([]Slot, error) {
	grid, err := GenerateDailyIntervals(workStart, workEnd, durationMinutes)
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, 0, len(grid))
	for _, iv := range grid {
		slots = append(slots, SlotOf(iv))
	}
	return slots, nil
}

// GenerateDailyIntervals та же сетка, что и GenerateDailySlots, в минутах от полуночи
func GenerateDailyIntervals(workStart, workEnd float64, durationMinutes int) ([]Interval[int], error) {
	startM, err := DecimalToMinutes(workStart)
	if err != nil {
		return nil, fmt.Errorf("work start: %w", err)
	}
	endM, err := DecimalToMinutes(workEnd)
	if err != nil {
		return nil, fmt.Errorf("work end: %w", err)
	}
	if endM <= startM {
		return nil, fmt.Errorf("%w: end %v is not after start %v", ErrInvalidWorkWindow, workEnd, workStart)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration %d", ErrInvalidWorkWindow, durationMinutes)
	}

	grid := make([]Interval[int], 0, (endM-startM)/durationMinutes)
	for cur := startM; cur+durationMinutes <= endM; cur += durationMinutes {
		grid = append(grid, Interval[int]{Start: cur, End: cur + durationMinutes})
	}
	return grid, nil
}
