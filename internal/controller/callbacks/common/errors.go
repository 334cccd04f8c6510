package common

import (
	"errors"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/service"
)

// Ошибки разбора ввода в обработчиках
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, service.ErrShareTokenNotFound):
		return "❌ Ссылка недействительна. Попросите владельца календаря прислать новую"
	case errors.Is(err, service.ErrTimeSlotNotFound):
		return "❌ Встреча не найдена"
	case errors.Is(err, service.ErrTimeSlotOverlap):
		return "❌ Это время пересекается с другой встречей"
	case errors.Is(err, service.ErrTextParse):
		return "❌ Не удалось понять время встречи. Например: «завтра в 15:00 созвон с командой»"
	case errors.Is(err, service.ErrMeetingProvision):
		return "❌ Не удалось создать видеовстречу. Попробуйте подтвердить позже"
	case errors.Is(err, service.ErrInvalidTimeRange):
		return "❌ Конец встречи должен быть позже начала"
	case errors.Is(err, availability.ErrInvalidWorkWindow):
		return "❌ Конец рабочего дня должен быть позже начала"
	case errors.Is(err, availability.ErrInvalidTimeValue):
		return "❌ Неверное время. Используйте формат 9.30 или 9:30"
	case errors.Is(err, service.ErrInvalidSettings):
		return "❌ Неверные настройки. Подробности: /help"
	case errors.Is(err, service.ErrForbidden):
		return "❌ У вас нет доступа к этой встрече"
	case errors.Is(err, model.ErrInvalidTransition):
		return "❌ Встреча уже отменена"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}
