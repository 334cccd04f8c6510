package handlers

import (
	"context"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireSettings получает настройки пользователя, отвечая ошибкой если не удалось.
// Возвращает settings и true если OK, nil и false если нет
func (h *Handlers) requireSettings(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Settings, bool) {
	if update.Message == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	settings, err := h.settingsService.GetSettings(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get settings", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return nil, false
	}

	return settings, true
}

// localToday возвращает текущую дату пользователя по его часовому поясу
func (h *Handlers) localToday(settings *model.Settings) time.Time {
	local := availability.FromUTCNaive(h.now(), settings.Offset())
	return availability.DayStart(local)
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, params *bot.SendMessageParams) {
	_, err := b.SendMessage(ctx, params)
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Any("chat_id", params.ChatID),
			zap.Error(err),
		)
	}
}
