package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/google/uuid"
)

// Репозитории возвращают (nil, nil), если запись не найдена

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByExternalID(ctx context.Context, externalID int64) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	LockForUpdate(ctx context.Context, id uuid.UUID) error
}

type SettingsRepository interface {
	Create(ctx context.Context, settings *model.Settings) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Settings, error)
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*model.Settings, error)
	Update(ctx context.Context, settings *model.Settings) error
	ListWithDailyReminder(ctx context.Context) ([]*model.Settings, error)
}

type ShareRepository interface {
	Create(ctx context.Context, share *model.Share) error
	GetByToken(ctx context.Context, token string) (*model.Share, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*model.Share, error)
}

type TimeSlotRepository interface {
	Create(ctx context.Context, slot *model.TimeSlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error)
	Update(ctx context.Context, slot *model.TimeSlot) error
	FindConfirmedForUserOnDate(ctx context.Context, userID uuid.UUID, dayStart time.Time) ([]*model.TimeSlot, error)
	FindOverlappingConfirmed(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*model.TimeSlot, error)
	FindUpcomingConfirmed(ctx context.Context, now time.Time) ([]*model.TimeSlot, error)
}

type AlertRepository interface {
	Exists(ctx context.Context, userID, timeSlotID uuid.UUID) (bool, error)
	// Create возвращает false, если запись для пары уже существует
	Create(ctx context.Context, alert *model.AlertRecord) (bool, error)
}

type DailyAlertRepository interface {
	Exists(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error)
	Create(ctx context.Context, alert *model.DailyAlertRecord) (bool, error)
}

// Repositories набор репозиториев, работающих через одно соединение или транзакцию
type Repositories struct {
	Users       UserRepository
	Settings    SettingsRepository
	Shares      ShareRepository
	TimeSlots   TimeSlotRepository
	Alerts      AlertRepository
	DailyAlerts DailyAlertRepository
}

// Transactor выполняет fn в одной транзакции. Ошибка fn откатывает транзакцию.
type Transactor interface {
	InTx(ctx context.Context, fn func(r Repositories) error) error
}

// MeetingProvider создаёт видеокомнату и возвращает ссылку на неё
type MeetingProvider interface {
	CreateMeeting(ctx context.Context, userID uuid.UUID, title, description string) (string, error)
}

// TextParser разбирает свободный текст в черновик встречи
type TextParser interface {
	ParseFreeText(ctx context.Context, message string) (*model.ParsedSlot, error)
}
