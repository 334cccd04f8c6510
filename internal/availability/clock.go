// Package availability содержит чистые вычисления расписания:
// перевод времени "часы.минуты", сетку слотов и проверку пересечений.
package availability

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidTimeValue минутная часть значения "часы.минуты" вне [0, 60)
	ErrInvalidTimeValue = errors.New("invalid time value")
	// ErrInvalidWorkWindow конец рабочего окна не позже начала или длительность не положительна
	ErrInvalidWorkWindow = errors.New("invalid work window")
)

// DecimalToMinutes переводит 9.30 в 570 минут от полуночи.
// Дробная часть кодирует минуты на циферблате, а не долю часа: 9.75 недопустимо.
func DecimalToMinutes(t float64) (int, error) {
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeValue, t)
	}
	hours := math.Floor(t)
	minutes := int(math.Round((t - hours) * 100))
	if minutes < 0 || minutes >= 60 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeValue, t)
	}
	return int(hours)*60 + minutes, nil
}

// MinutesToDecimal обратное преобразование: 570 -> 9.30
func MinutesToDecimal(m int) float64 {
	return float64(m/60*100+m%60) / 100
}

// ToUTCNaive переводит локальное наивное время в UTC по смещению в часах
func ToUTCNaive(local time.Time, offsetHours int) time.Time {
	return local.Add(-time.Duration(offsetHours) * time.Hour)
}

// FromUTCNaive переводит наивное UTC в локальное время по смещению в часах
func FromUTCNaive(utc time.Time, offsetHours int) time.Time {
	return utc.Add(time.Duration(offsetHours) * time.Hour)
}

// DecimalOfTimeOfDay возвращает время суток в виде "часы.минуты", дата отбрасывается
func DecimalOfTimeOfDay(dt time.Time) float64 {
	return MinutesToDecimal(dt.Hour()*60 + dt.Minute())
}

// DayStart возвращает полночь той же даты
func DayStart(dt time.Time) time.Time {
	return time.Date(dt.Year(), dt.Month(), dt.Day(), 0, 0, 0, 0, dt.Location())
}

// MinutesSinceDayStart минуты от полуночи dayStart до dt; может выходить за пределы суток
func MinutesSinceDayStart(dayStart, dt time.Time) int {
	return int(dt.Sub(dayStart) / time.Minute)
}
