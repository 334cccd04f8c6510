package formatting

import "github.com/Freeeeeet/meeting_bot/internal/model"

// StatusDisplay отображение статуса встречи
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetSlotStatusDisplay возвращает emoji и текст для статуса встречи
func GetSlotStatusDisplay(status model.SlotStatus) StatusDisplay {
	displays := map[model.SlotStatus]StatusDisplay{
		model.SlotStatusProposed:  {"⏳", "Ожидает подтверждения"},
		model.SlotStatusConfirmed: {"✅", "Подтверждена"},
		model.SlotStatusCancelled: {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}
