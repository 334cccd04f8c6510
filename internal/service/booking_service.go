package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultMeetingTitle = "Встреча"

// SlotRequest время встречи в локальном наивном времени и её описание
type SlotRequest struct {
	Start       time.Time
	End         time.Time
	Title       *string
	Description *string
}

type BookingService struct {
	repos    Repositories
	tx       Transactor
	meetings MeetingProvider
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewBookingService создаёт сервис бронирования. meetings может быть nil:
// тогда видеокомнаты при подтверждении не создаются.
func NewBookingService(
	repos Repositories,
	tx Transactor,
	meetings MeetingProvider,
	notifier notify.Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repos:    repos,
		tx:       tx,
		meetings: meetings,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateCrossPartySlot предлагает встречу владельцу ссылки от имени приглашённого.
// Время указывается в часовом поясе владельца.
func (s *BookingService) CreateCrossPartySlot(ctx context.Context, ownerToken string, invitedExternalID int64, req SlotRequest) (*model.TimeSlot, error) {
	if !req.End.After(req.Start) {
		return nil, ErrInvalidTimeRange
	}

	invited, err := s.repos.Users.GetByExternalID(ctx, invitedExternalID)
	if err != nil {
		return nil, fmt.Errorf("get invited user: %w", err)
	}
	if invited == nil {
		return nil, ErrUserNotFound
	}

	share, err := s.repos.Shares.GetByToken(ctx, ownerToken)
	if err != nil {
		return nil, fmt.Errorf("get share: %w", err)
	}
	if share == nil {
		return nil, ErrShareTokenNotFound
	}

	ownerSettings, err := s.repos.Settings.GetByUserID(ctx, share.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("get owner settings: %w", err)
	}
	offset := ownerSettings.Offset()

	slot := &model.TimeSlot{
		OwnerID:     share.OwnerID,
		InvitedID:   invited.ID,
		MeetStartAt: availability.ToUTCNaive(req.Start, offset),
		MeetEndAt:   availability.ToUTCNaive(req.End, offset),
		Status:      model.SlotStatusProposed,
		Title:       titleOrDefault(req.Title),
		Description: req.Description,
	}

	if err := s.repos.TimeSlots.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create time slot: %w", err)
	}

	s.logger.Info("Slot proposed",
		zap.String("slot_id", slot.ID.String()),
		zap.String("owner_id", slot.OwnerID.String()),
		zap.String("invited_id", slot.InvitedID.String()),
		zap.Time("start", slot.MeetStartAt),
	)

	s.notifyParticipant(ctx, notify.EventNewSlotProposed, slot, slot.OwnerID)

	return slot, nil
}

// ProposeOfferedSlot предлагает владельцу слот из GetExternalSlots.
// Слот задан в локальном времени приглашённого и переводится в часовой пояс владельца.
func (s *BookingService) ProposeOfferedSlot(ctx context.Context, ownerToken string, invitedExternalID int64, date time.Time, offered availability.Slot) (*model.TimeSlot, error) {
	startM, err := availability.DecimalToMinutes(offered.Start)
	if err != nil {
		return nil, err
	}
	endM, err := availability.DecimalToMinutes(offered.End)
	if err != nil {
		return nil, err
	}

	invited, err := s.repos.Users.GetByExternalID(ctx, invitedExternalID)
	if err != nil {
		return nil, fmt.Errorf("get invited user: %w", err)
	}
	if invited == nil {
		return nil, ErrUserNotFound
	}
	invitedSettings, err := s.repos.Settings.GetByUserID(ctx, invited.ID)
	if err != nil {
		return nil, fmt.Errorf("get invited settings: %w", err)
	}

	share, err := s.repos.Shares.GetByToken(ctx, ownerToken)
	if err != nil {
		return nil, fmt.Errorf("get share: %w", err)
	}
	if share == nil {
		return nil, ErrShareTokenNotFound
	}
	ownerSettings, err := s.repos.Settings.GetByUserID(ctx, share.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("get owner settings: %w", err)
	}

	day := calendarDay(date)
	shift := time.Duration(ownerSettings.Offset()-invitedSettings.Offset()) * time.Hour
	req := SlotRequest{
		Start: day.Add(time.Duration(startM)*time.Minute + shift),
		End:   day.Add(time.Duration(endM)*time.Minute + shift),
	}

	return s.CreateCrossPartySlot(ctx, ownerToken, invitedExternalID, req)
}

// CreateSelfSlot создаёт подтверждённую личную встречу, если она не пересекается
// с подтверждёнными встречами пользователя. Время в часовом поясе пользователя.
func (s *BookingService) CreateSelfSlot(ctx context.Context, externalID int64, req SlotRequest) (*model.TimeSlot, error) {
	if !req.End.After(req.Start) {
		return nil, ErrInvalidTimeRange
	}

	user, err := s.repos.Users.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	settings, err := s.repos.Settings.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	offset := settings.Offset()

	slot := &model.TimeSlot{
		OwnerID:     user.ID,
		InvitedID:   user.ID,
		MeetStartAt: availability.ToUTCNaive(req.Start, offset),
		MeetEndAt:   availability.ToUTCNaive(req.End, offset),
		Status:      model.SlotStatusConfirmed,
		Title:       titleOrDefault(req.Title),
		Description: req.Description,
	}

	err = s.tx.InTx(ctx, func(r Repositories) error {
		// Сериализуем запись одного пользователя: проверка и вставка не должны разойтись
		if err := r.Users.LockForUpdate(ctx, user.ID); err != nil {
			return fmt.Errorf("lock user: %w", err)
		}

		existing, err := r.TimeSlots.FindOverlappingConfirmed(ctx, user.ID, slot.MeetStartAt, slot.MeetEndAt)
		if err != nil {
			return fmt.Errorf("find overlapping slots: %w", err)
		}

		busy := make([]availability.Interval[int64], 0, len(existing))
		for _, e := range existing {
			busy = append(busy, availability.TimeInterval(e.MeetStartAt, e.MeetEndAt))
		}
		if availability.AnyOverlap(availability.TimeInterval(slot.MeetStartAt, slot.MeetEndAt), busy) {
			return ErrTimeSlotOverlap
		}

		if err := r.TimeSlots.Create(ctx, slot); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return ErrTimeSlotOverlap
			}
			return fmt.Errorf("create time slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Self slot booked",
		zap.String("slot_id", slot.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.Time("start", slot.MeetStartAt),
	)

	s.notifyParticipant(ctx, notify.EventSelfBookingConfirmed, slot, user.ID)

	return slot, nil
}

// UpdateSlot частично обновляет встречу. При подтверждении проверяет пересечения
// с подтверждёнными встречами участников и создаёт видеокомнату;
// если это не удалось, изменения не сохраняются.
func (s *BookingService) UpdateSlot(ctx context.Context, slotID uuid.UUID, patch model.TimeSlotPatch) (*model.TimeSlot, error) {
	var slot *model.TimeSlot
	alreadyCancelled := false
	err := s.tx.InTx(ctx, func(r Repositories) error {
		var err error
		slot, err = r.TimeSlots.GetByIDForUpdate(ctx, slotID)
		if err != nil {
			return fmt.Errorf("get time slot: %w", err)
		}
		if slot == nil {
			return ErrTimeSlotNotFound
		}

		// Повторная отмена ничего не меняет
		if patch.Confirm != nil && !*patch.Confirm && slot.Status == model.SlotStatusCancelled {
			alreadyCancelled = true
			return nil
		}

		wasConfirmed := slot.IsConfirmed()
		if err := patch.Apply(slot); err != nil {
			return fmt.Errorf("apply patch: %w", err)
		}

		if !wasConfirmed && slot.IsConfirmed() {
			if err := s.checkParticipantsFree(ctx, r, slot); err != nil {
				return err
			}

			if slot.MeetingURL == nil && s.meetings != nil {
				url, err := s.provisionMeeting(ctx, slot)
				if err != nil {
					return err
				}
				slot.MeetingURL = &url
			}
		}

		if err := r.TimeSlots.Update(ctx, slot); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return ErrTimeSlotOverlap
			}
			return fmt.Errorf("update time slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if alreadyCancelled {
		s.logger.Info("Slot already cancelled", zap.String("slot_id", slot.ID.String()))
		return slot, nil
	}

	s.logger.Info("Slot updated",
		zap.String("slot_id", slot.ID.String()),
		zap.String("status", string(slot.Status)),
	)

	if patch.Confirm != nil {
		for _, userID := range slot.Participants() {
			s.notifyParticipant(ctx, notify.EventConfirmationChanged, slot, userID)
		}
	}

	return slot, nil
}

// checkParticipantsFree блокирует участников встречи и проверяет, что у них нет
// других подтверждённых встреч в это время. Вызывается внутри транзакции.
func (s *BookingService) checkParticipantsFree(ctx context.Context, r Repositories, slot *model.TimeSlot) error {
	participants := slot.Participants()
	// Один порядок блокировок для всех транзакций
	slices.SortFunc(participants, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	for _, userID := range participants {
		if err := r.Users.LockForUpdate(ctx, userID); err != nil {
			return fmt.Errorf("lock user: %w", err)
		}
	}

	candidate := availability.TimeInterval(slot.MeetStartAt, slot.MeetEndAt)
	for _, userID := range participants {
		existing, err := r.TimeSlots.FindOverlappingConfirmed(ctx, userID, slot.MeetStartAt, slot.MeetEndAt)
		if err != nil {
			return fmt.Errorf("find overlapping slots: %w", err)
		}

		busy := make([]availability.Interval[int64], 0, len(existing))
		for _, e := range existing {
			if e.ID == slot.ID {
				continue
			}
			busy = append(busy, availability.TimeInterval(e.MeetStartAt, e.MeetEndAt))
		}
		if availability.AnyOverlap(candidate, busy) {
			s.logger.Info("Slot overlaps a confirmed meeting",
				zap.String("slot_id", slot.ID.String()),
				zap.String("user_id", userID.String()),
			)
			return ErrTimeSlotOverlap
		}
	}

	return nil
}

// CancelSelfSlot отменяет встречу, в которой участвует пользователь
func (s *BookingService) CancelSelfSlot(ctx context.Context, externalID int64, slotID uuid.UUID) (*model.TimeSlot, error) {
	user, slot, err := s.participantSlot(ctx, externalID, slotID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancelling slot",
		zap.String("slot_id", slot.ID.String()),
		zap.String("user_id", user.ID.String()),
	)

	confirm := false
	return s.UpdateSlot(ctx, slotID, model.TimeSlotPatch{Confirm: &confirm})
}

// RespondToSlot принимает или отклоняет предложенную встречу. Принять может только владелец.
func (s *BookingService) RespondToSlot(ctx context.Context, externalID int64, slotID uuid.UUID, accept bool) (*model.TimeSlot, error) {
	user, slot, err := s.participantSlot(ctx, externalID, slotID)
	if err != nil {
		return nil, err
	}
	if accept && slot.OwnerID != user.ID {
		return nil, ErrForbidden
	}

	return s.UpdateSlot(ctx, slotID, model.TimeSlotPatch{Confirm: &accept})
}

func (s *BookingService) participantSlot(ctx context.Context, externalID int64, slotID uuid.UUID) (*model.User, *model.TimeSlot, error) {
	user, err := s.repos.Users.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	slot, err := s.repos.TimeSlots.GetByID(ctx, slotID)
	if err != nil {
		return nil, nil, fmt.Errorf("get time slot: %w", err)
	}
	if slot == nil || !slot.HasParticipant(user.ID) {
		return nil, nil, ErrTimeSlotNotFound
	}

	return user, slot, nil
}

func (s *BookingService) provisionMeeting(ctx context.Context, slot *model.TimeSlot) (string, error) {
	description := ""
	if slot.Description != nil {
		description = *slot.Description
	}

	url, err := s.meetings.CreateMeeting(ctx, slot.OwnerID, slot.Title, description)
	if err != nil {
		s.logger.Error("Failed to provision meeting room",
			zap.String("slot_id", slot.ID.String()),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", ErrMeetingProvision, err)
	}
	if url == "" {
		return "", fmt.Errorf("%w: empty meeting url", ErrMeetingProvision)
	}

	return url, nil
}

// notifyParticipant отправляет уведомление участнику встречи.
// Ошибки сборки уведомления только логируются: состояние встречи уже сохранено.
func (s *BookingService) notifyParticipant(ctx context.Context, eventType notify.EventType, slot *model.TimeSlot, userID uuid.UUID) {
	recipient, err := loadRecipient(ctx, s.repos, userID)
	if err != nil || recipient == nil {
		s.logger.Error("Failed to build notification",
			zap.String("type", string(eventType)),
			zap.String("slot_id", slot.ID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}

	ev := notify.Event{
		Type:      eventType,
		Recipient: *recipient,
	}
	info := slotInfo(slot)
	ev.Slot = &info

	if !slot.IsSelf() {
		otherID := slot.OwnerID
		if otherID == userID {
			otherID = slot.InvitedID
		}
		counterpart, err := loadRecipient(ctx, s.repos, otherID)
		if err != nil {
			s.logger.Warn("Failed to load counterpart", zap.String("user_id", otherID.String()), zap.Error(err))
		}
		ev.Counterpart = counterpart
	}

	s.notifier.Notify(ev)
}

func titleOrDefault(title *string) string {
	if title == nil || *title == "" {
		return defaultMeetingTitle
	}
	return *title
}
