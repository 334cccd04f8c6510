// Package notify доставляет доменные уведомления пользователям
// в фоне, не блокируя операцию, которая их породила.
package notify

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventNewSlotProposed      EventType = "new_slot_proposed"      // владельцу предложили встречу
	EventConfirmationChanged  EventType = "confirmation_changed"   // встречу подтвердили или отменили
	EventMeetingAlert         EventType = "meeting_alert"          // скоро встреча
	EventSelfBookingConfirmed EventType = "self_booking_confirmed" // личная запись создана
	EventDailyAgenda          EventType = "daily_agenda"           // сводка на день
)

// Recipient получатель уведомления
type Recipient struct {
	UserID     uuid.UUID
	ExternalID int64 // чат в мессенджере
	Name       string
	Username   string
	Timezone   int // смещение от UTC в часах
}

// SlotInfo данные встречи для текста уведомления; время в наивном UTC
type SlotInfo struct {
	ID          uuid.UUID
	Title       string
	Description string
	MeetingURL  string
	StartAt     time.Time
	EndAt       time.Time
	Confirmed   bool
	Cancelled   bool
}

// Event уведомление с уже собранными данными, чтобы отправителю не ходить в базу
type Event struct {
	Type        EventType
	Recipient   Recipient
	Counterpart *Recipient // второй участник, если он есть
	Slot        *SlotInfo
	Agenda      []SlotInfo // для EventDailyAgenda
	Date        time.Time  // локальная дата сводки
	AlertOffset int        // минут до начала для EventMeetingAlert
}
