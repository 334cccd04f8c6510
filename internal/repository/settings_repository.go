package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SettingsRepository struct {
	db base.DBTX
}

func NewSettingsRepository(db base.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `id, user_id, timezone, work_time_start, work_time_end, duration_minutes,
		alert_offset_minutes, daily_reminder_time, working_days, created_at, updated_at`

// Create создаёт настройки пользователя
func (r *SettingsRepository) Create(ctx context.Context, settings *model.Settings) error {
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}

	query := `
		INSERT INTO settings (id, user_id, timezone, work_time_start, work_time_end, duration_minutes,
			alert_offset_minutes, daily_reminder_time, working_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		settings.ID,
		settings.UserID,
		settings.Timezone,
		settings.WorkTimeStart,
		settings.WorkTimeEnd,
		settings.DurationMinutes,
		settings.AlertOffsetMinutes,
		settings.DailyReminderTime,
		workingDaysValue(settings.WorkingDays),
	).Scan(&settings.CreatedAt, &settings.UpdatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create settings: %w", model.ErrConflict)
		}
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID получает настройки пользователя
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM settings WHERE user_id = $1`

	settings, err := scanSettings(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings by user id: %w", err)
	}

	return settings, nil
}

// GetByUserIDForUpdate получает настройки и блокирует их строку до конца транзакции
func (r *SettingsRepository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*model.Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM settings WHERE user_id = $1 FOR UPDATE`

	settings, err := scanSettings(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings for update: %w", err)
	}

	return settings, nil
}

// Update сохраняет все изменяемые поля настроек
func (r *SettingsRepository) Update(ctx context.Context, settings *model.Settings) error {
	query := `
		UPDATE settings
		SET timezone = $1, work_time_start = $2, work_time_end = $3, duration_minutes = $4,
			alert_offset_minutes = $5, daily_reminder_time = $6, working_days = $7, updated_at = now() AT TIME ZONE 'utc'
		WHERE user_id = $8
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		settings.Timezone,
		settings.WorkTimeStart,
		settings.WorkTimeEnd,
		settings.DurationMinutes,
		settings.AlertOffsetMinutes,
		settings.DailyReminderTime,
		workingDaysValue(settings.WorkingDays),
		settings.UserID,
	).Scan(&settings.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("settings not found")
		}
		return fmt.Errorf("update settings: %w", err)
	}

	return nil
}

// ListWithDailyReminder получает настройки всех пользователей с включённой ежедневной сводкой
func (r *SettingsRepository) ListWithDailyReminder(ctx context.Context) ([]*model.Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM settings WHERE daily_reminder_time IS NOT NULL`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list settings with daily reminder: %w", err)
	}
	defer rows.Close()

	var list []*model.Settings
	for rows.Next() {
		settings, err := scanSettings(rows)
		if err != nil {
			return nil, fmt.Errorf("scan settings: %w", err)
		}
		list = append(list, settings)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}

	return list, nil
}

func scanSettings(row pgx.Row) (*model.Settings, error) {
	var (
		settings    model.Settings
		workingDays *int16
	)
	err := row.Scan(
		&settings.ID,
		&settings.UserID,
		&settings.Timezone,
		&settings.WorkTimeStart,
		&settings.WorkTimeEnd,
		&settings.DurationMinutes,
		&settings.AlertOffsetMinutes,
		&settings.DailyReminderTime,
		&workingDays,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if workingDays != nil {
		mask := model.WorkingDays(*workingDays)
		settings.WorkingDays = &mask
	}

	return &settings, nil
}

func workingDaysValue(mask *model.WorkingDays) *int16 {
	if mask == nil {
		return nil
	}
	v := int16(*mask)
	return &v
}
