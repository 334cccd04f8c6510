package meeting

import (
	"context"

	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleOffersDay перерисовывает свободное время владельца ссылки на другой день
func HandleOffersDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	token, date, err := common.DecodeOffersDay(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	telegramID := callback.From.ID
	settings, err := h.SettingsService.GetSettings(ctx, telegramID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	offers, err := h.AvailabilityService.GetExternalSlots(ctx, telegramID, token, date)
	if err != nil {
		h.Logger.Warn("Failed to get external slots",
			zap.Int64("telegram_id", telegramID),
			zap.Time("date", date),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "")

	text, markup := common.OffersView(token, date, settings.Offset(), offers)
	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.Logger.Warn("Failed to edit offers message",
			zap.Error(err),
			zap.Int64("chat_id", msg.Chat.ID))
	}
}
