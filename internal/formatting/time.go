// Package formatting готовит даты, время и статусы встреч к показу пользователю.
package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с коротким днём недели: "14.10.2026 (Ср)"
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s (%s)", FormatDate(t), GetWeekdayShortName(int(t.Weekday())))
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatLocalRange переводит наивное UTC в часовой пояс пользователя и форматирует
// как "14.10.2026 (Ср) 12:00-12:30"
func FormatLocalRange(startUTC, endUTC time.Time, offsetHours int) string {
	start := availability.FromUTCNaive(startUTC, offsetHours)
	end := availability.FromUTCNaive(endUTC, offsetHours)
	return fmt.Sprintf("%s %s", FormatDateWithWeekday(start), FormatTimeRange(start, end))
}

// FormatClock форматирует значение "часы.минуты": 9.30 -> "09:30"
func FormatClock(decimal float64) string {
	m, err := availability.DecimalToMinutes(decimal)
	if err != nil {
		return "--:--"
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatSlot форматирует слот: "09:30-10:00"
func FormatSlot(s availability.Slot) string {
	return FormatClock(s.Start) + "-" + FormatClock(s.End)
}

// FormatOffset форматирует смещение часового пояса: "UTC+3"
func FormatOffset(offsetHours int) string {
	if offsetHours == 0 {
		return "UTC"
	}
	return fmt.Sprintf("UTC%+d", offsetHours)
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
