package meeting

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/meeting_bot/internal/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBookOffer предлагает владельцу ссылки выбранный приглашённым слот
func HandleBookOffer(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	offer, err := common.DecodeBookOffer(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	telegramID := callback.From.ID
	slot, err := h.BookingService.ProposeOfferedSlot(ctx, offer.Token, telegramID, offer.Date, offer.Slot)
	if err != nil {
		h.Logger.Error("Failed to propose offered slot",
			zap.Error(err),
			zap.Int64("telegram_id", telegramID),
			zap.Time("date", offer.Date),
		)
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	h.Logger.Info("Offered slot proposed",
		zap.Int64("telegram_id", telegramID),
		zap.String("slot_id", slot.ID.String()))

	common.AnswerCallback(ctx, b, callback.ID, "📨 Предложение отправлено")

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		return
	}

	text := fmt.Sprintf(
		"📨 Встреча предложена на %s, %s.\n\nВладелец календаря получит уведомление и подтвердит или отклонит её.",
		formatting.FormatDateWithWeekday(offer.Date),
		formatting.FormatSlot(offer.Slot),
	)
	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      text,
	})
	if err != nil {
		h.Logger.Warn("Failed to edit offer message",
			zap.Error(err),
			zap.Int64("chat_id", msg.Chat.ID))
	}
}
