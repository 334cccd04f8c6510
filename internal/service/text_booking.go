package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
	"github.com/Freeeeeet/meeting_bot/internal/model"
	"go.uber.org/zap"
)

const defaultTextSlotMinutes = 60

// TextBookingService записывает личные встречи по свободному тексту
type TextBookingService struct {
	repos   Repositories
	parser  TextParser
	booking *BookingService
	logger  *zap.Logger
}

func NewTextBookingService(repos Repositories, parser TextParser, booking *BookingService, logger *zap.Logger) *TextBookingService {
	return &TextBookingService{
		repos:   repos,
		parser:  parser,
		booking: booking,
		logger:  logger,
	}
}

// BookSelfSlotByText разбирает сообщение и создаёт личную встречу.
// now задаётся в UTC.
func (s *TextBookingService) BookSelfSlotByText(ctx context.Context, externalID int64, message string, now time.Time) (*model.TimeSlot, error) {
	if s.parser == nil {
		return nil, fmt.Errorf("%w: parser is not configured", ErrTextParse)
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

	parsed, err := s.parser.ParseFreeText(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextParse, err)
	}
	if parsed == nil {
		return nil, fmt.Errorf("%w: empty result", ErrTextParse)
	}

	duration := defaultTextSlotMinutes
	if settings != nil && settings.DurationMinutes != nil {
		duration = *settings.DurationMinutes
	}

	localNow := availability.FromUTCNaive(now, settings.Offset())
	req, err := ResolveParsedSlot(parsed, localNow, duration)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking slot from text",
		zap.Int64("external_id", externalID),
		zap.Time("start", req.Start),
	)

	return s.booking.CreateSelfSlot(ctx, externalID, req)
}

// ResolveParsedSlot превращает разобранный текст в запрос на встречу.
// Дата выбирается по приоритету: явная дата, сегодня, завтра, послезавтра,
// ближайший названный день недели, иначе завтра. Начало обязательно;
// без конца встреча длится defaultMinutes.
func ResolveParsedSlot(p *model.ParsedSlot, localNow time.Time, defaultMinutes int) (SlotRequest, error) {
	if p.StartTime == nil {
		return SlotRequest{}, fmt.Errorf("%w: start time is missing", ErrTextParse)
	}

	day, err := resolveDate(p, calendarDay(localNow))
	if err != nil {
		return SlotRequest{}, err
	}

	startM, err := parseClock(*p.StartTime)
	if err != nil {
		return SlotRequest{}, err
	}
	start := day.Add(time.Duration(startM) * time.Minute)

	end := start.Add(time.Duration(defaultMinutes) * time.Minute)
	if p.EndTime != nil {
		endM, err := parseClock(*p.EndTime)
		if err != nil {
			return SlotRequest{}, err
		}
		end = day.Add(time.Duration(endM) * time.Minute)
	}
	if !end.After(start) {
		return SlotRequest{}, ErrInvalidTimeRange
	}

	return SlotRequest{
		Start:       start,
		End:         end,
		Title:       p.Title,
		Description: p.Description,
	}, nil
}

func resolveDate(p *model.ParsedSlot, today time.Time) (time.Time, error) {
	switch {
	case p.Date != nil && *p.Date != "":
		d, err := time.Parse(time.DateOnly, strings.TrimSpace(*p.Date))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: date %q", ErrTextParse, *p.Date)
		}
		return d, nil
	case isSet(p.IsToday):
		return today, nil
	case isSet(p.IsTomorrow):
		return today.AddDate(0, 0, 1), nil
	case isSet(p.IsAfterTomorrow):
		return today.AddDate(0, 0, 2), nil
	}

	if p.Weekday != nil {
		if idx, ok := model.ParseWeekday(*p.Weekday); ok {
			ahead := (idx - model.WeekdayIndex(today.Weekday()) + 7) % 7
			if ahead == 0 {
				ahead = 7
			}
			return today.AddDate(0, 0, ahead), nil
		}
	}

	return today.AddDate(0, 0, 1), nil
}

// parseClock переводит "HH:MM" в минуты от полуночи
func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: time %q", ErrTextParse, value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func isSet(b *bool) bool {
	return b != nil && *b
}
