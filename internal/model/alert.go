package model

import (
	"time"

	"github.com/google/uuid"
)

// AlertRecord факт отправки напоминания о встрече; пара (UserID, TimeSlotID) уникальна
type AlertRecord struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	TimeSlotID uuid.UUID `json:"time_slot_id"`
	SentAt     time.Time `json:"sent_at"`
}

// DailyAlertRecord факт отправки ежедневной сводки; пара (UserID, Date) уникальна
type DailyAlertRecord struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Date   time.Time `json:"date"` // локальная дата пользователя
	SentAt time.Time `json:"sent_at"`
}
