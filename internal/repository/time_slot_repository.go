package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TimeSlotRepository struct {
	db base.DBTX
}

func NewTimeSlotRepository(db base.DBTX) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

const timeSlotColumns = `id, owner_id, invited_id, meet_start_at, meet_end_at, status,
		title, description, meeting_url, created_at`

// Create создаёт новую встречу
func (r *TimeSlotRepository) Create(ctx context.Context, slot *model.TimeSlot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}

	query := `
		INSERT INTO time_slots (id, owner_id, invited_id, meet_start_at, meet_end_at, status, title, description, meeting_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		slot.ID,
		slot.OwnerID,
		slot.InvitedID,
		slot.MeetStartAt,
		slot.MeetEndAt,
		slot.Status,
		slot.Title,
		slot.Description,
		slot.MeetingURL,
	).Scan(&slot.CreatedAt)

	if err != nil {
		if base.IsExclusionViolation(err) {
			return fmt.Errorf("create time slot: %w", model.ErrConflict)
		}
		return fmt.Errorf("create time slot: %w", err)
	}

	return nil
}

// GetByID получает встречу по ID
func (r *TimeSlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	query := `SELECT ` + timeSlotColumns + ` FROM time_slots WHERE id = $1`

	slot, err := scanTimeSlot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get time slot by id: %w", err)
	}

	return slot, nil
}

// GetByIDForUpdate получает встречу и блокирует её строку до конца транзакции
func (r *TimeSlotRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	query := `SELECT ` + timeSlotColumns + ` FROM time_slots WHERE id = $1 FOR UPDATE`

	slot, err := scanTimeSlot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get time slot for update: %w", err)
	}

	return slot, nil
}

// Update сохраняет статус, описание и ссылку на встречу
func (r *TimeSlotRepository) Update(ctx context.Context, slot *model.TimeSlot) error {
	query := `
		UPDATE time_slots
		SET status = $1, title = $2, description = $3, meeting_url = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query, slot.Status, slot.Title, slot.Description, slot.MeetingURL, slot.ID)
	if err != nil {
		if base.IsExclusionViolation(err) {
			return fmt.Errorf("update time slot: %w", model.ErrConflict)
		}
		return fmt.Errorf("update time slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("time slot not found")
	}

	return nil
}

// FindConfirmedForUserOnDate получает подтверждённые встречи пользователя (владелец или приглашённый),
// пересекающие сутки [dayStart, dayStart+24h)
func (r *TimeSlotRepository) FindConfirmedForUserOnDate(ctx context.Context, userID uuid.UUID, dayStart time.Time) ([]*model.TimeSlot, error) {
	query := `
		SELECT ` + timeSlotColumns + `
		FROM time_slots
		WHERE (owner_id = $1 OR invited_id = $1)
		  AND status = 'confirmed'
		  AND meet_start_at < $3
		  AND meet_end_at > $2
		ORDER BY meet_start_at
	`

	rows, err := r.db.Query(ctx, query, userID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("find confirmed slots on date: %w", err)
	}

	return collectTimeSlots(rows)
}

// FindOverlappingConfirmed получает подтверждённые встречи пользователя, пересекающие [start, end)
func (r *TimeSlotRepository) FindOverlappingConfirmed(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*model.TimeSlot, error) {
	query := `
		SELECT ` + timeSlotColumns + `
		FROM time_slots
		WHERE (owner_id = $1 OR invited_id = $1)
		  AND status = 'confirmed'
		  AND meet_start_at < $3
		  AND meet_end_at > $2
		ORDER BY meet_start_at
	`

	rows, err := r.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("find overlapping slots: %w", err)
	}

	return collectTimeSlots(rows)
}

// FindUpcomingConfirmed получает подтверждённые встречи, которые ещё не закончились
func (r *TimeSlotRepository) FindUpcomingConfirmed(ctx context.Context, now time.Time) ([]*model.TimeSlot, error) {
	query := `
		SELECT ` + timeSlotColumns + `
		FROM time_slots
		WHERE status = 'confirmed'
		  AND meet_end_at > $1
		ORDER BY meet_start_at
	`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("find upcoming slots: %w", err)
	}

	return collectTimeSlots(rows)
}

func collectTimeSlots(rows pgx.Rows) ([]*model.TimeSlot, error) {
	defer rows.Close()

	var slots []*model.TimeSlot
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time slot: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time slots: %w", err)
	}

	return slots, nil
}

func scanTimeSlot(row pgx.Row) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	err := row.Scan(
		&slot.ID,
		&slot.OwnerID,
		&slot.InvitedID,
		&slot.MeetStartAt,
		&slot.MeetEndAt,
		&slot.Status,
		&slot.Title,
		&slot.Description,
		&slot.MeetingURL,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}
