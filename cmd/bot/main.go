package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/meeting_bot/internal/app"
	"github.com/Freeeeeet/meeting_bot/internal/client/jazz"
	"github.com/Freeeeeet/meeting_bot/internal/client/textparse"
	"github.com/Freeeeeet/meeting_bot/internal/config"
	"github.com/Freeeeeet/meeting_bot/internal/controller"
	"github.com/Freeeeeet/meeting_bot/internal/notify"
	"github.com/Freeeeeet/meeting_bot/internal/service"
	"github.com/Freeeeeet/meeting_bot/migrations"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting meeting bot", zap.String("environment", cfg.Environment))

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	if err := migrate(ctx, cfg, pool, logger); err != nil {
		return err
	}

	store := app.NewPgStore(pool, logger)
	repos := store.Repositories()

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return err
	}

	dispatcher := notify.NewDispatcher(notify.NewTelegramSender(b), cfg.NotifyQueueSize, cfg.NotifyWorkers, logger)

	var meetings service.MeetingProvider
	if cfg.JazzSDKKey != "" {
		client, err := jazz.NewClient(cfg.JazzSDKKey, cfg.JazzBaseURL, logger)
		if err != nil {
			return err
		}
		meetings = client
	} else {
		logger.Warn("JAZZ_SDK_KEY is not set, meetings will be confirmed without video rooms")
	}

	var parser service.TextParser
	if cfg.LLMAPIKey != "" {
		parser = textparse.NewClient(textparse.Config{
			APIKey:  cfg.LLMAPIKey,
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModel,
		}, logger)
	} else {
		logger.Warn("LLM_API_KEY is not set, free text booking is disabled")
	}

	availabilityService := service.NewAvailabilityService(repos, logger)
	bookingService := service.NewBookingService(repos, store, meetings, dispatcher, logger)
	services := controller.Services{
		Users:        service.NewUserService(repos, store, logger),
		Settings:     service.NewSettingsService(repos, store, logger),
		Shares:       service.NewShareService(repos, cfg.ShareBaseURL, logger),
		Availability: availabilityService,
		Booking:      bookingService,
		TextBooking:  service.NewTextBookingService(repos, parser, bookingService, logger),
	}

	botController := controller.NewBotController(b, services, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично для работы
		logger.Warn("Bot commands menu was not updated", zap.Error(err))
	}

	scheduler := app.NewScheduler(
		service.NewReminderService(repos, availabilityService, dispatcher, logger),
		cfg.ReminderInterval,
		logger,
	)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		return botController.Start(gctx)
	})

	return g.Wait()
}

func migrate(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *zap.Logger) error {
	var migrator *app.Migrator
	var err error
	if cfg.MigrationsDir != "" {
		migrator, err = app.NewMigrator(pool, nil, cfg.MigrationsDir, logger)
	} else {
		migrator, err = app.NewMigrator(pool, migrations.FS, ".", logger)
	}
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}
