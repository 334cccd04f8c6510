package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minutesPerDay = 24 * 60

// AgendaItem подтверждённая встреча в локальном времени пользователя
type AgendaItem struct {
	Slot  *model.TimeSlot
	Local availability.Slot
}

type AvailabilityService struct {
	repos  Repositories
	logger *zap.Logger
}

func NewAvailabilityService(repos Repositories, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		repos:  repos,
		logger: logger,
	}
}

// GetSelfSlots возвращает подтверждённые встречи пользователя за его локальную дату
func (s *AvailabilityService) GetSelfSlots(ctx context.Context, userID uuid.UUID, date time.Time) ([]AgendaItem, error) {
	settings, err := s.repos.Settings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	offset := settings.Offset()

	day := calendarDay(date)
	slots, err := s.confirmedOnLocalDay(ctx, userID, day, offset)
	if err != nil {
		return nil, err
	}

	items := make([]AgendaItem, 0, len(slots))
	for _, slot := range slots {
		localStart := availability.FromUTCNaive(slot.MeetStartAt, offset)
		localEnd := availability.FromUTCNaive(slot.MeetEndAt, offset)
		items = append(items, AgendaItem{
			Slot: slot,
			Local: availability.Slot{
				Start: availability.DecimalOfTimeOfDay(localStart),
				End:   availability.DecimalOfTimeOfDay(localEnd),
			},
		})
	}

	return items, nil
}

// GetSelfSlotsByExternalID то же, что GetSelfSlots, по идентификатору мессенджера
func (s *AvailabilityService) GetSelfSlotsByExternalID(ctx context.Context, externalID int64, date time.Time) ([]AgendaItem, error) {
	user, err := s.repos.Users.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.GetSelfSlots(ctx, user.ID, date)
}

// GetExternalSlots возвращает слоты владельца ссылки, которые можно предложить приглашённому.
// Слоты выражены в локальном времени приглашённого и попадают в рабочие часы обоих.
func (s *AvailabilityService) GetExternalSlots(ctx context.Context, invitedExternalID int64, ownerToken string, date time.Time) ([]availability.Slot, error) {
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
	if !ownerSettings.IsWorkingDay(day.Weekday()) {
		return []availability.Slot{}, nil
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

	if !ownerSettings.HasWorkWindow() {
		s.logger.Warn("Owner has no work hours configured",
			zap.String("owner_id", share.OwnerID.String()),
		)
		return []availability.Slot{}, nil
	}

	grid, err := availability.GenerateDailyIntervals(
		*ownerSettings.WorkTimeStart,
		*ownerSettings.WorkTimeEnd,
		*ownerSettings.DurationMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("generate owner slots: %w", err)
	}

	invitedOffset := invitedSettings.Offset()
	busy, err := s.busyMinutes(ctx, day, invitedOffset, share.OwnerID, invited.ID)
	if err != nil {
		return nil, err
	}

	window, hasWindow, err := workWindow(invitedSettings)
	if err != nil {
		return nil, fmt.Errorf("invited work window: %w", err)
	}

	shift := (ownerSettings.Offset() - invitedOffset) * 60
	result := make([]availability.Slot, 0, len(grid))
	for _, candidate := range grid {
		if availability.AnyOverlap(candidate, busy) {
			continue
		}

		shifted := availability.Interval[int]{
			Start: candidate.Start - shift,
			End:   candidate.End - shift,
		}
		if shifted.Start < 0 || shifted.End > minutesPerDay {
			continue
		}
		if hasWindow && (shifted.Start < window.Start || shifted.End > window.End) {
			continue
		}

		result = append(result, availability.SlotOf(shifted))
	}

	return result, nil
}

// busyMinutes собирает подтверждённые встречи участников за день в часовом поясе offset,
// в минутах от начала этого дня
func (s *AvailabilityService) busyMinutes(ctx context.Context, day time.Time, offset int, userIDs ...uuid.UUID) ([]availability.Interval[int], error) {
	var busy []availability.Interval[int]
	for _, userID := range userIDs {
		slots, err := s.confirmedOnLocalDay(ctx, userID, day, offset)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			start := availability.FromUTCNaive(slot.MeetStartAt, offset)
			end := availability.FromUTCNaive(slot.MeetEndAt, offset)
			busy = append(busy, availability.Interval[int]{
				Start: availability.MinutesSinceDayStart(day, start),
				End:   availability.MinutesSinceDayStart(day, end),
			})
		}
	}
	return busy, nil
}

// confirmedOnLocalDay получает подтверждённые встречи пользователя за локальные сутки day,
// без повторов и по возрастанию начала
func (s *AvailabilityService) confirmedOnLocalDay(ctx context.Context, userID uuid.UUID, day time.Time, offset int) ([]*model.TimeSlot, error) {
	slots, err := s.repos.TimeSlots.FindConfirmedForUserOnDate(ctx, userID, availability.ToUTCNaive(day, offset))
	if err != nil {
		return nil, fmt.Errorf("find confirmed slots: %w", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(slots))
	unique := make([]*model.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if _, ok := seen[slot.ID]; ok {
			continue
		}
		seen[slot.ID] = struct{}{}
		unique = append(unique, slot)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].MeetStartAt.Before(unique[j].MeetStartAt)
	})

	return unique, nil
}

// workWindow рабочие часы в минутах; false если они не заданы
func workWindow(settings *model.Settings) (availability.Interval[int], bool, error) {
	if settings == nil || settings.WorkTimeStart == nil || settings.WorkTimeEnd == nil {
		return availability.Interval[int]{}, false, nil
	}
	start, err := availability.DecimalToMinutes(*settings.WorkTimeStart)
	if err != nil {
		return availability.Interval[int]{}, false, err
	}
	end, err := availability.DecimalToMinutes(*settings.WorkTimeEnd)
	if err != nil {
		return availability.Interval[int]{}, false, err
	}
	return availability.Interval[int]{Start: start, End: end}, true, nil
}

// calendarDay отбрасывает время и часовой пояс, оставляя дату как наивную полночь
func calendarDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
