package meeting

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/meeting_bot/internal/formatting"
	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/notify"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleDecision обрабатывает кнопки "Принять" и "Отклонить" под предложенной встречей
func HandleDecision(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, accept bool) {
	prefix := notify.CallbackReject
	if accept {
		prefix = notify.CallbackAccept
	}

	slotID, err := common.ParseSlotID(callback.Data, prefix)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	slot, err := h.BookingService.RespondToSlot(ctx, callback.From.ID, slotID, accept)
	if err != nil {
		h.Logger.Error("Failed to respond to slot",
			zap.Error(err),
			zap.Int64("telegram_id", callback.From.ID),
			zap.String("slot_id", slotID.String()),
			zap.Bool("accept", accept),
		)
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	answer := "❌ Встреча отклонена"
	if slot.IsConfirmed() {
		answer = "✅ Встреча подтверждена"
	}
	common.AnswerCallback(ctx, b, callback.ID, answer)

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		return
	}

	// Убираем кнопки, чтобы решение нельзя было принять повторно
	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      DecisionText(msg.Text, slot),
	})
	if err != nil {
		h.Logger.Warn("Failed to edit decision message",
			zap.Error(err),
			zap.Int64("chat_id", msg.Chat.ID))
	}
}

// DecisionText дополняет исходное сообщение итоговым статусом встречи
func DecisionText(original string, slot *model.TimeSlot) string {
	display := formatting.GetSlotStatusDisplay(slot.Status)
	text := fmt.Sprintf("%s\n\n%s %s", original, display.Emoji, display.Text)
	if slot.MeetingURL != nil {
		text += "\n🔗 " + *slot.MeetingURL
	}
	return text
}
