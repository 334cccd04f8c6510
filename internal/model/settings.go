package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WorkingDays битовая маска рабочих дней: бит i = день i, понедельник = 0
type WorkingDays uint8

// AllWorkingDays маска, в которой рабочие все семь дней
const AllWorkingDays WorkingDays = 1<<7 - 1

var weekdayNames = map[string]int{
	"пн": 0, "вт": 1, "ср": 2, "чт": 3, "пт": 4, "сб": 5, "вс": 6,
	"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
}

// WeekdayIndex переводит time.Weekday в индекс с понедельника
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// ParseWeekday возвращает индекс дня недели по короткому названию
func ParseWeekday(name string) (int, bool) {
	idx, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return idx, ok
}

// WorkingDaysFromNames собирает маску из коротких названий дней ("пн", "вт", ...).
// Неизвестные названия пропускаются.
func WorkingDaysFromNames(names []string) WorkingDays {
	var mask WorkingDays
	for _, name := range names {
		if idx, ok := ParseWeekday(name); ok {
			mask |= 1 << idx
		}
	}
	return mask
}

// Has проверяет, является ли день недели рабочим
func (w WorkingDays) Has(wd time.Weekday) bool {
	return w&(1<<WeekdayIndex(wd)) != 0
}

// Settings настройки календаря пользователя (1:1 с User)
type Settings struct {
	ID                 uuid.UUID    `json:"id"`
	UserID             uuid.UUID    `json:"user_id"`
	Timezone           int          `json:"timezone"`             // смещение от UTC в часах
	WorkTimeStart      *float64     `json:"work_time_start"`      // часы.минуты, 9.30 = 09:30
	WorkTimeEnd        *float64     `json:"work_time_end"`        // часы.минуты
	DurationMinutes    *int         `json:"duration_minutes"`     // длина слота
	AlertOffsetMinutes *int         `json:"alert_offset_minutes"` // за сколько минут напоминать
	DailyReminderTime  *float64     `json:"daily_reminder_time"`  // часы.минуты
	WorkingDays        *WorkingDays `json:"working_days"`         // nil = все дни рабочие
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// IsWorkingDay проверяет день по маске. Если маска не задана, рабочими считаются все дни.
func (s *Settings) IsWorkingDay(wd time.Weekday) bool {
	if s == nil || s.WorkingDays == nil {
		return true
	}
	return s.WorkingDays.Has(wd)
}

// HasWorkWindow проверяет, что заданы рабочие часы и длительность слота
func (s *Settings) HasWorkWindow() bool {
	return s != nil && s.WorkTimeStart != nil && s.WorkTimeEnd != nil && s.DurationMinutes != nil
}

// Offset возвращает смещение часового пояса, 0 если настроек нет
func (s *Settings) Offset() int {
	if s == nil {
		return 0
	}
	return s.Timezone
}

// SettingsPatch частичное обновление настроек; nil означает "не менять"
type SettingsPatch struct {
	Timezone           *int
	WorkTimeStart      *float64
	WorkTimeEnd        *float64
	DurationMinutes    *int
	AlertOffsetMinutes *int
	DailyReminderTime  *float64
	WorkingDays        []string
}

// Apply применяет патч к настройкам
func (p SettingsPatch) Apply(s *Settings) {
	if p.Timezone != nil {
		s.Timezone = *p.Timezone
	}
	if p.WorkTimeStart != nil {
		s.WorkTimeStart = p.WorkTimeStart
	}
	if p.WorkTimeEnd != nil {
		s.WorkTimeEnd = p.WorkTimeEnd
	}
	if p.DurationMinutes != nil {
		s.DurationMinutes = p.DurationMinutes
	}
	if p.AlertOffsetMinutes != nil {
		s.AlertOffsetMinutes = p.AlertOffsetMinutes
	}
	if p.DailyReminderTime != nil {
		s.DailyReminderTime = p.DailyReminderTime
	}
	if p.WorkingDays != nil {
		mask := WorkingDaysFromNames(p.WorkingDays)
		s.WorkingDays = &mask
	}
}
