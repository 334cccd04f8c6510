package keyboard

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Noop callback кнопки-индикатора без действия
const Noop = "noop"

// DayPagination создаёт ряд навигации по дням: ◀️ вчера | сегодня | завтра ▶️
// prevData и nextData - callback data соседних дней
func DayPagination(prevData, nextData string, date time.Time) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("◀️ "+date.AddDate(0, 0, -1).Format("02.01"), prevData),
		Button("📅 "+date.Format("02.01"), Noop),
		Button(date.AddDate(0, 0, 1).Format("02.01")+" ▶️", nextData),
	}
}

// AddDayPagination добавляет навигацию по дням к builder
func (b *Builder) AddDayPagination(prevData, nextData string, date time.Time) *Builder {
	return b.Row(DayPagination(prevData, nextData, date)...)
}
