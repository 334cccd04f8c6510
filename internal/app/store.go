package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/meeting_bot/internal/repository"
	"github.com/Freeeeeet/meeting_bot/internal/repository/base"
	"github.com/Freeeeeet/meeting_bot/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PgStore набор репозиториев поверх пула и единица работы для сервисов
type PgStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPgStore(pool *pgxpool.Pool, logger *zap.Logger) *PgStore {
	return &PgStore{pool: pool, logger: logger}
}

// Repositories репозитории, работающие вне транзакции
func (s *PgStore) Repositories() service.Repositories {
	return repositoriesFor(s.pool)
}

// InTx выполняет fn в транзакции: коммит при успехе, откат при ошибке
func (s *PgStore) InTx(ctx context.Context, fn func(r service.Repositories) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.logger.Warn("Failed to rollback transaction", zap.Error(err))
		}
	}()

	if err := fn(repositoriesFor(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func repositoriesFor(db base.DBTX) service.Repositories {
	return service.Repositories{
		Users:       repository.NewUserRepository(db),
		Settings:    repository.NewSettingsRepository(db),
		Shares:      repository.NewShareRepository(db),
		TimeSlots:   repository.NewTimeSlotRepository(db),
		Alerts:      repository.NewAlertRepository(db),
		DailyAlerts: repository.NewDailyAlertRepository(db),
	}
}
