package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/meeting"
	"github.com/Freeeeeet/meeting_bot/internal/notify"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	case strings.HasPrefix(data, notify.CallbackAccept):
		meeting.HandleDecision(ctx, b, callback, h, true)
	case strings.HasPrefix(data, notify.CallbackReject):
		meeting.HandleDecision(ctx, b, callback, h, false)
	case strings.HasPrefix(data, common.BookOffer):
		meeting.HandleBookOffer(ctx, b, callback, h)
	case strings.HasPrefix(data, common.OffersDay):
		meeting.HandleOffersDay(ctx, b, callback, h)
	case data == keyboard.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")
	default:
		h.Logger.Warn("Unknown callback data",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
