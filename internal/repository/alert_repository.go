package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/repository/base"
	"github.com/google/uuid"
)

// AlertRepository журнал отправленных напоминаний о встречах
type AlertRepository struct {
	db base.DBTX
}

func NewAlertRepository(db base.DBTX) *AlertRepository {
	return &AlertRepository{db: db}
}

// Exists проверяет, отправлялось ли напоминание пользователю о встрече
func (r *AlertRepository) Exists(ctx context.Context, userID, timeSlotID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM time_slot_alerts
			WHERE user_id = $1 AND time_slot_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, timeSlotID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check alert exists: %w", err)
	}

	return exists, nil
}

// Create записывает отправку напоминания. Возвращает false, если запись уже была:
// значит напоминание отправил другой проход планировщика.
func (r *AlertRepository) Create(ctx context.Context, alert *model.AlertRecord) (bool, error) {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}

	query := `
		INSERT INTO time_slot_alerts (id, user_id, time_slot_id, sent_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, time_slot_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, alert.ID, alert.UserID, alert.TimeSlotID, alert.SentAt)
	if err != nil {
		return false, fmt.Errorf("create alert: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

// DailyAlertRepository журнал отправленных ежедневных сводок
type DailyAlertRepository struct {
	db base.DBTX
}

func NewDailyAlertRepository(db base.DBTX) *DailyAlertRepository {
	return &DailyAlertRepository{db: db}
}

// Exists проверяет, отправлялась ли сводка пользователю за дату
func (r *DailyAlertRepository) Exists(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM daily_alerts
			WHERE user_id = $1 AND alert_date = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("check daily alert exists: %w", err)
	}

	return exists, nil
}

// Create записывает отправку сводки; false если запись за дату уже есть
func (r *DailyAlertRepository) Create(ctx context.Context, alert *model.DailyAlertRecord) (bool, error) {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}

	query := `
		INSERT INTO daily_alerts (id, user_id, alert_date, sent_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, alert_date) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, alert.ID, alert.UserID, alert.Date, alert.SentAt)
	if err != nil {
		return false, fmt.Errorf("create daily alert: %w", err)
	}

	return result.RowsAffected() == 1, nil
}
