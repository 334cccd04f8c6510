package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusProposed  SlotStatus = "proposed"  // Ожидает подтверждения владельца
	SlotStatusConfirmed SlotStatus = "confirmed" // Подтверждено
	SlotStatusCancelled SlotStatus = "cancelled" // Отменено или отклонено
)

// ErrInvalidTransition переход между статусами слота запрещён
var ErrInvalidTransition = errors.New("invalid slot status transition")

// ErrConflict запись нарушает ограничение уникальности или исключения в хранилище
var ErrConflict = errors.New("conflicting record")

// TimeSlot встреча между владельцем и приглашённым.
// Время хранится как наивное UTC.
type TimeSlot struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	InvitedID   uuid.UUID  `json:"invited_id"` // совпадает с OwnerID для личной записи
	MeetStartAt time.Time  `json:"meet_start_at"`
	MeetEndAt   time.Time  `json:"meet_end_at"`
	Status      SlotStatus `json:"status"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	MeetingURL  *string    `json:"meeting_url"` // заполняется после подтверждения
	CreatedAt   time.Time  `json:"created_at"`
}

// IsConfirmed проверяет, подтверждена ли встреча
func (t *TimeSlot) IsConfirmed() bool {
	return t.Status == SlotStatusConfirmed
}

// IsSelf проверяет, что встреча записана пользователем самому себе
func (t *TimeSlot) IsSelf() bool {
	return t.OwnerID == t.InvitedID
}

// Participants возвращает участников без повторов
func (t *TimeSlot) Participants() []uuid.UUID {
	if t.IsSelf() {
		return []uuid.UUID{t.OwnerID}
	}
	return []uuid.UUID{t.OwnerID, t.InvitedID}
}

// HasParticipant проверяет участие пользователя во встрече
func (t *TimeSlot) HasParticipant(userID uuid.UUID) bool {
	return t.OwnerID == userID || t.InvitedID == userID
}

// NextStatus вычисляет статус после подтверждения (true) или отмены (false).
// Отменённую встречу подтвердить повторно нельзя.
func (s SlotStatus) NextStatus(confirm bool) (SlotStatus, error) {
	if !confirm {
		return SlotStatusCancelled, nil
	}
	if s == SlotStatusCancelled {
		return s, ErrInvalidTransition
	}
	return SlotStatusConfirmed, nil
}

// TimeSlotPatch частичное обновление встречи; nil означает "не менять"
type TimeSlotPatch struct {
	Confirm     *bool
	Title       *string
	Description *string
	MeetingURL  *string
}

// Apply применяет патч к встрече
func (p TimeSlotPatch) Apply(t *TimeSlot) error {
	if p.Confirm != nil {
		next, err := t.Status.NextStatus(*p.Confirm)
		if err != nil {
			return err
		}
		t.Status = next
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.MeetingURL != nil {
		t.MeetingURL = p.MeetingURL
	}
	return nil
}
