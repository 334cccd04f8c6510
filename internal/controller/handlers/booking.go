package handlers

import (
	"context"

	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBook обрабатывает команду /book <код> [дата]
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showOffers(ctx, b, update, CommandArgs(update.Message.Text))
}

// showOffers показывает свободные слоты владельца ссылки кнопками
func (h *Handlers) showOffers(ctx context.Context, b *bot.Bot, update *models.Update, args []string) {
	settings, ok := h.requireSettings(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	token, date, err := ParseBookArgs(args, h.localToday(settings))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Формат: /book <код> [ГГГГ-ММ-ДД]")
		return
	}

	offers, err := h.availabilityService.GetExternalSlots(ctx, telegramID, token, date)
	if err != nil {
		h.logger.Warn("Failed to get external slots",
			zap.Int64("telegram_id", telegramID),
			zap.Time("date", date),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text, markup := common.OffersView(token, date, settings.Offset(), offers)
	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
}
