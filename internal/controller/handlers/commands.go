package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/meeting_bot/internal/formatting"
	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/start - Начать работу с ботом\n" +
	"/share - Ссылка на ваш календарь\n" +
	"/today - Встречи на сегодня\n" +
	"/book <код> [дата] - Свободное время владельца ссылки\n" +
	"/settings - Показать настройки\n" +
	"/cancel <id> - Отменить встречу\n" +
	"/help - Показать эту справку\n\n" +
	"Настройки меняются так:\n" +
	"/settings tz=3 work=9.00-18.00 duration=30 alert=15 daily=8.30 days=пн,вт,ср,чт,пт\n\n" +
	"Чтобы записать встречу себе, просто напишите её текстом, например:\n" +
	"«завтра в 15:00 созвон с командой»"

// HandleStart обрабатывает команду /start, в том числе переход по ссылке "/start <код>"
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)

	registeredUser, err := h.userService.RegisterUser(ctx, from.ID, name, from.Username)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Int64("telegram_id", from.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	// Переход по ссылке владельца календаря
	if args := CommandArgs(update.Message.Text); len(args) == 1 {
		h.showOffers(ctx, b, update, args)
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Я помогаю договариваться о встречах: делитесь ссылкой на свой календарь, "+
			"а собеседники выберут свободное время.\n\n"+
			"Для начала задайте рабочие часы:\n"+
			"/settings tz=3 work=9.00-18.00 duration=30\n\n"+
			"Все команды: /help",
		registeredUser.Name,
	)

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleShare обрабатывает команду /share
func (h *Handlers) HandleShare(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	link, err := h.shareService.ShareLink(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get share link", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "🔗 Ссылка на ваш календарь:\n" + link + "\n\nПо ней собеседники смогут предложить встречу в ваше свободное время.",
	})
}

// HandleToday обрабатывает команду /today
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	settings, ok := h.requireSettings(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	today := h.localToday(settings)

	items, err := h.availabilityService.GetSelfSlotsByExternalID(ctx, telegramID, today)
	if err != nil {
		h.logger.Error("Failed to get agenda", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "📅 %s\n\n", formatting.FormatDateWithWeekday(today))
	if len(items) == 0 {
		text.WriteString("Встреч нет")
	} else {
		fmt.Fprintf(&text, "У вас %d %s:\n", len(items), formatting.PluralizeMeetings(len(items)))
		for _, item := range items {
			fmt.Fprintf(&text, "\n🕐 %s %s", formatting.FormatSlot(item.Local), item.Slot.Title)
			if item.Slot.MeetingURL != nil {
				fmt.Fprintf(&text, "\n🔗 %s", *item.Slot.MeetingURL)
			}
			fmt.Fprintf(&text, "\n/cancel %s\n", item.Slot.ID)
		}
	}

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text.String(),
	})
}

// HandleSettings обрабатывает команду /settings: без аргументов показывает настройки,
// с аргументами key=value обновляет их
func (h *Handlers) HandleSettings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	args := CommandArgs(update.Message.Text)

	if len(args) == 0 {
		settings, ok := h.requireSettings(ctx, b, update)
		if !ok {
			return
		}
		h.sendMessage(ctx, b, &bot.SendMessageParams{ChatID: chatID, Text: FormatSettings(settings)})
		return
	}

	patch, err := ParseSettingsArgs(args)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Не удалось разобрать настройки.\n\n"+helpText)
		return
	}

	settings, err := h.settingsService.UpdateSettings(ctx, telegramID, patch)
	if err != nil {
		h.logger.Warn("Failed to update settings", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Настройки сохранены\n\n" + FormatSettings(settings),
	})
}

// HandleCancel обрабатывает команду /cancel <id>
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	slotID, err := ParseSlotIDArg(CommandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Укажите id встречи: /cancel <id>\n\nСписок встреч: /today")
		return
	}

	if _, err := h.bookingService.CancelSelfSlot(ctx, telegramID, slotID); err != nil {
		h.logger.Warn("Failed to cancel slot",
			zap.Int64("telegram_id", telegramID),
			zap.String("slot_id", slotID.String()),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
	}
	// Об отмене участники узнают из уведомления
}

// HandleTextMessage записывает встречу по свободному тексту
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	slot, err := h.textBookingService.BookSelfSlotByText(ctx, telegramID, update.Message.Text, h.now())
	if err != nil {
		h.logger.Warn("Failed to book slot by text", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	// Подтверждение придёт уведомлением о записи
	h.logger.Info("Slot booked by text",
		zap.Int64("telegram_id", telegramID),
		zap.String("slot_id", slot.ID.String()))
}

// FormatSettings форматирует настройки для отображения
func FormatSettings(s *model.Settings) string {
	var text strings.Builder
	text.WriteString("⚙️ Настройки\n\n")
	fmt.Fprintf(&text, "🌍 Часовой пояс: %s\n", formatting.FormatOffset(s.Timezone))

	if s.WorkTimeStart != nil && s.WorkTimeEnd != nil {
		fmt.Fprintf(&text, "🕘 Рабочие часы: %s-%s\n",
			formatting.FormatClock(*s.WorkTimeStart), formatting.FormatClock(*s.WorkTimeEnd))
	} else {
		text.WriteString("🕘 Рабочие часы: не заданы\n")
	}

	if s.DurationMinutes != nil {
		fmt.Fprintf(&text, "⏱ Длительность встречи: %s\n", formatting.FormatDuration(*s.DurationMinutes))
	} else {
		text.WriteString("⏱ Длительность встречи: не задана\n")
	}

	if s.AlertOffsetMinutes != nil {
		fmt.Fprintf(&text, "🔔 Напоминание: за %d %s\n", *s.AlertOffsetMinutes, formatting.PluralizeMinutes(*s.AlertOffsetMinutes))
	} else {
		text.WriteString("🔔 Напоминание: выключено\n")
	}

	if s.DailyReminderTime != nil {
		fmt.Fprintf(&text, "📋 План на день: в %s\n", formatting.FormatClock(*s.DailyReminderTime))
	} else {
		text.WriteString("📋 План на день: выключен\n")
	}

	text.WriteString("📆 Рабочие дни: ")
	if s.WorkingDays == nil {
		text.WriteString("все")
	} else {
		var days []string
		for i := 0; i < 7; i++ {
			if *s.WorkingDays&(1<<i) != 0 {
				days = append(days, formatting.GetWeekdayShortName((i+1)%7)) // маска с понедельника
			}
		}
		if len(days) == 0 {
			text.WriteString("нет")
		} else {
			text.WriteString(strings.Join(days, ", "))
		}
	}

	return text.String()
}
