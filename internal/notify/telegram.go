package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Префиксы callback-данных кнопок под предложением встречи
const (
	CallbackAccept = "slot:accept:"
	CallbackReject = "slot:reject:"
)

// MessageSender часть API бота, нужная для отправки сообщений
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Telegram не принимает от бота больше ~30 сообщений в секунду
const sendRatePerSecond = 25

// TelegramSender доставляет уведомления сообщениями в Telegram
type TelegramSender struct {
	bot     MessageSender
	limiter *rate.Limiter
}

func NewTelegramSender(b MessageSender) *TelegramSender {
	return &TelegramSender{
		bot:     b,
		limiter: rate.NewLimiter(rate.Limit(sendRatePerSecond), sendRatePerSecond),
	}
}

// Send отправляет уведомление в чат получателя
func (s *TelegramSender) Send(ctx context.Context, ev Event) error {
	params := &bot.SendMessageParams{
		ChatID:    ev.Recipient.ExternalID,
		Text:      MessageText(ev),
		ParseMode: models.ParseModeHTML,
	}

	if ev.Type == EventNewSlotProposed && ev.Slot != nil {
		params.ReplyMarkup = DecisionKeyboard(ev.Slot.ID)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	if _, err := s.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// DecisionKeyboard кнопки "Принять" и "Отклонить" для предложенной встречи
func DecisionKeyboard(slotID uuid.UUID) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Принять", CallbackData: CallbackAccept + slotID.String()},
				{Text: "❌ Отклонить", CallbackData: CallbackReject + slotID.String()},
			},
		},
	}
}
