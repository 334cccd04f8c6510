package common

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/meeting_bot/internal/formatting"
	"github.com/go-telegram/bot/models"
)

const (
	// MaxOfferButtons максимум кнопок со слотами в одном сообщении
	MaxOfferButtons = 48
	offersPerRow    = 3
)

// OffersView текст и клавиатура со свободным временем владельца ссылки.
// Слоты в часовом поясе приглашённого, offset - его смещение.
func OffersView(token string, date time.Time, offset int, offers []availability.Slot) (string, *models.InlineKeyboardMarkup) {
	var text string
	if len(offers) == 0 {
		text = fmt.Sprintf("😔 На %s свободного времени нет.\n\nВыберите другой день.",
			formatting.FormatDateWithWeekday(date))
	} else {
		text = fmt.Sprintf("🗓 Свободное время на %s (%s):\n\nВыберите слот, владелец календаря получит предложение.",
			formatting.FormatDateWithWeekday(date), formatting.FormatOffset(offset))
	}

	return text, OffersKeyboard(token, date, offers)
}

// OffersKeyboard собирает клавиатуру со слотами и навигацией по дням
func OffersKeyboard(token string, date time.Time, offers []availability.Slot) *models.InlineKeyboardMarkup {
	if len(offers) > MaxOfferButtons {
		offers = offers[:MaxOfferButtons]
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(offers))
	for _, slot := range offers {
		buttons = append(buttons, keyboard.Button(formatting.FormatSlot(slot), EncodeBookOffer(token, date, slot)))
	}

	return keyboard.NewBuilder().
		Grid(buttons, offersPerRow).
		AddDayPagination(
			EncodeOffersDay(token, date.AddDate(0, 0, -1)),
			EncodeOffersDay(token, date.AddDate(0, 0, 1)),
			date,
		).
		Build()
}
