package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderService рассылает напоминания о встречах и ежедневные сводки
type ReminderService struct {
	repos    Repositories
	agenda   *AvailabilityService
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewReminderService(repos Repositories, agenda *AvailabilityService, notifier notify.Notifier, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		repos:    repos,
		agenda:   agenda,
		notifier: notifier,
		logger:   logger,
	}
}

// IsAlertDue проверяет, что сейчас ровно та минута, когда нужно напомнить о встрече.
// Пропущенная минута не догоняется.
func IsAlertDue(now, meetStart time.Time, offsetMinutes int) bool {
	now = now.Truncate(time.Minute)
	meetStart = meetStart.Truncate(time.Minute)
	alertAt := meetStart.Add(-time.Duration(offsetMinutes) * time.Minute)
	return alertAt.Equal(now) && now.Before(meetStart)
}

// Sweep проверяет предстоящие подтверждённые встречи и отправляет напоминания,
// каждому участнику не больше одного раза. Возвращает число отправленных.
func (s *ReminderService) Sweep(ctx context.Context, now time.Time) (int, error) {
	slots, err := s.repos.TimeSlots.FindUpcomingConfirmed(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("find upcoming slots: %w", err)
	}

	sent := 0
	for _, slot := range slots {
		for _, userID := range slot.Participants() {
			ok, err := s.alertParticipant(ctx, now, slot, userID)
			if err != nil {
				s.logger.Error("Failed to process meeting alert",
					zap.String("slot_id", slot.ID.String()),
					zap.String("user_id", userID.String()),
					zap.Error(err),
				)
				continue
			}
			if ok {
				sent++
			}
		}
	}

	return sent, nil
}

func (s *ReminderService) alertParticipant(ctx context.Context, now time.Time, slot *model.TimeSlot, userID uuid.UUID) (bool, error) {
	settings, err := s.repos.Settings.GetByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get settings: %w", err)
	}
	if settings == nil || settings.AlertOffsetMinutes == nil {
		return false, nil
	}

	offset := *settings.AlertOffsetMinutes
	if !IsAlertDue(now, slot.MeetStartAt, offset) {
		return false, nil
	}

	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return false, nil
	}

	exists, err := s.repos.Alerts.Exists(ctx, userID, slot.ID)
	if err != nil {
		return false, fmt.Errorf("check alert: %w", err)
	}
	if exists {
		return false, nil
	}

	// Запись создаётся до отправки: уникальная пара (user, slot) не даёт
	// параллельному проходу отправить напоминание второй раз
	created, err := s.repos.Alerts.Create(ctx, &model.AlertRecord{
		UserID:     userID,
		TimeSlotID: slot.ID,
		SentAt:     now,
	})
	if err != nil {
		return false, fmt.Errorf("record alert: %w", err)
	}
	if !created {
		return false, nil
	}

	info := slotInfo(slot)
	s.notifier.Notify(notify.Event{
		Type:        notify.EventMeetingAlert,
		Recipient:   recipientOf(user, settings),
		Slot:        &info,
		AlertOffset: offset,
	})

	s.logger.Info("Meeting alert sent",
		zap.String("slot_id", slot.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return true, nil
}

// SweepDaily отправляет сводку на день тем, у кого сейчас по местному времени
// наступило время ежедневного напоминания. Не больше одной сводки за дату.
func (s *ReminderService) SweepDaily(ctx context.Context, now time.Time) (int, error) {
	list, err := s.repos.Settings.ListWithDailyReminder(ctx)
	if err != nil {
		return 0, fmt.Errorf("list daily reminders: %w", err)
	}

	sent := 0
	for _, settings := range list {
		ok, err := s.sendDaily(ctx, now, settings)
		if err != nil {
			s.logger.Error("Failed to process daily agenda",
				zap.String("user_id", settings.UserID.String()),
				zap.Error(err),
			)
			continue
		}
		if ok {
			sent++
		}
	}

	return sent, nil
}

func (s *ReminderService) sendDaily(ctx context.Context, now time.Time, settings *model.Settings) (bool, error) {
	if settings.DailyReminderTime == nil {
		return false, nil
	}
	remindAt, err := availability.DecimalToMinutes(*settings.DailyReminderTime)
	if err != nil {
		return false, fmt.Errorf("daily reminder time: %w", err)
	}

	local := availability.FromUTCNaive(now, settings.Offset()).Truncate(time.Minute)
	localDay := calendarDay(local)
	if availability.MinutesSinceDayStart(localDay, local) != remindAt {
		return false, nil
	}

	user, err := s.repos.Users.GetByID(ctx, settings.UserID)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return false, nil
	}

	exists, err := s.repos.DailyAlerts.Exists(ctx, user.ID, localDay)
	if err != nil {
		return false, fmt.Errorf("check daily alert: %w", err)
	}
	if exists {
		return false, nil
	}

	created, err := s.repos.DailyAlerts.Create(ctx, &model.DailyAlertRecord{
		UserID: user.ID,
		Date:   localDay,
		SentAt: now,
	})
	if err != nil {
		return false, fmt.Errorf("record daily alert: %w", err)
	}
	if !created {
		return false, nil
	}

	items, err := s.agenda.GetSelfSlots(ctx, user.ID, localDay)
	if err != nil {
		return false, fmt.Errorf("get agenda: %w", err)
	}

	agenda := make([]notify.SlotInfo, 0, len(items))
	for _, item := range items {
		agenda = append(agenda, slotInfo(item.Slot))
	}

	s.notifier.Notify(notify.Event{
		Type:      notify.EventDailyAgenda,
		Recipient: recipientOf(user, settings),
		Agenda:    agenda,
		Date:      localDay,
	})

	s.logger.Info("Daily agenda sent",
		zap.String("user_id", user.ID.String()),
		zap.Int("meetings", len(agenda)),
	)

	return true, nil
}
