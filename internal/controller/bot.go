package controller

import (
	"context"

	"github.com/Freeeeeet/meeting_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/meeting_bot/internal/controller/handlers"
	"github.com/Freeeeeet/meeting_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Services набор сервисов, которые обслуживает бот
type Services struct {
	Users        *service.UserService
	Settings     *service.SettingsService
	Shares       *service.ShareService
	Availability *service.AvailabilityService
	Booking      *service.BookingService
	TextBooking  *service.TextBookingService
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(botInstance *bot.Bot, services Services, logger *zap.Logger) *BotController {
	cmdHandlers := handlers.NewHandlers(
		services.Users,
		services.Settings,
		services.Shares,
		services.Availability,
		services.Booking,
		services.TextBooking,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		services.Users,
		services.Settings,
		services.Availability,
		services.Booking,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды с аргументами регистрируются по префиксу
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/share", bot.MatchTypeExact, c.handlers.HandleShare)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypePrefix, c.handlers.HandleBook)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/settings", bot.MatchTypePrefix, c.handlers.HandleSettings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, c.handlers.HandleCancel)

	// Свободный текст записывает встречу
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "share", Description: "🔗 Ссылка на мой календарь"},
		{Command: "today", Description: "📅 Встречи на сегодня"},
		{Command: "book", Description: "🗓 Свободное время по коду ссылки"},
		{Command: "settings", Description: "⚙️ Настройки календаря"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
