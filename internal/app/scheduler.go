package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Reminders фоновые проверки напоминаний
type Reminders interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
	SweepDaily(ctx context.Context, now time.Time) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	reminders Reminders
	interval  time.Duration
	now       func() time.Time
	logger    *zap.Logger
	stopChan  chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(reminders Reminders, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		reminders: reminders,
		interval:  interval,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	go s.runReminderTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runReminderTask периодически проверяет, кому пора напомнить о встрече
func (s *Scheduler) runReminderTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-s.stopChan:
			s.logger.Info("Reminder task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Reminder task cancelled")
			return
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := s.now()

	sent, err := s.reminders.Sweep(ctx, now)
	if err != nil {
		s.logger.Error("Failed to sweep meeting alerts", zap.Error(err))
	} else if sent > 0 {
		s.logger.Info("Meeting alerts sent", zap.Int("count", sent))
	}

	daily, err := s.reminders.SweepDaily(ctx, now)
	if err != nil {
		s.logger.Error("Failed to sweep daily agendas", zap.Error(err))
	} else if daily > 0 {
		s.logger.Info("Daily agendas sent", zap.Int("count", daily))
	}
}
