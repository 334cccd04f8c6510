package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/meeting_bot/internal/availability"
	"github.com/Freeeeeet/meeting_bot/internal/model"
	"go.uber.org/zap"
)

const (
	minTimezone = -12
	maxTimezone = 14
)

type SettingsService struct {
	repos  Repositories
	tx     Transactor
	logger *zap.Logger
}

func NewSettingsService(repos Repositories, tx Transactor, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repos:  repos,
		tx:     tx,
		logger: logger,
	}
}

// GetSettings получает настройки пользователя; пустые, если они ещё не созданы
func (s *SettingsService) GetSettings(ctx context.Context, externalID int64) (*model.Settings, error) {
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
	if settings == nil {
		settings = &model.Settings{UserID: user.ID}
	}

	return settings, nil
}

// UpdateSettings применяет частичное обновление настроек
func (s *SettingsService) UpdateSettings(ctx context.Context, externalID int64, patch model.SettingsPatch) (*model.Settings, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	user, err := s.repos.Users.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var updated *model.Settings
	err = s.tx.InTx(ctx, func(r Repositories) error {
		settings, err := r.Settings.GetByUserIDForUpdate(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}

		created := settings == nil
		if created {
			settings = &model.Settings{UserID: user.ID}
		}

		patch.Apply(settings)
		if err := validateWorkWindow(settings); err != nil {
			return err
		}

		if created {
			err = r.Settings.Create(ctx, settings)
		} else {
			err = r.Settings.Update(ctx, settings)
		}
		if err != nil {
			return fmt.Errorf("save settings: %w", err)
		}

		updated = settings
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Settings updated",
		zap.String("user_id", user.ID.String()),
		zap.Int("timezone", updated.Timezone),
	)

	return updated, nil
}

func validatePatch(p model.SettingsPatch) error {
	if p.Timezone != nil && (*p.Timezone < minTimezone || *p.Timezone > maxTimezone) {
		return fmt.Errorf("%w: timezone %d", ErrInvalidSettings, *p.Timezone)
	}
	if p.DurationMinutes != nil && *p.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration %d", ErrInvalidSettings, *p.DurationMinutes)
	}
	if p.AlertOffsetMinutes != nil && *p.AlertOffsetMinutes < 0 {
		return fmt.Errorf("%w: alert offset %d", ErrInvalidSettings, *p.AlertOffsetMinutes)
	}

	for _, v := range []*float64{p.WorkTimeStart, p.WorkTimeEnd, p.DailyReminderTime} {
		if v == nil {
			continue
		}
		m, err := availability.DecimalToMinutes(*v)
		if err != nil {
			return err
		}
		if m >= 24*60 {
			return fmt.Errorf("%w: %v", availability.ErrInvalidTimeValue, *v)
		}
	}

	for _, name := range p.WorkingDays {
		if _, ok := model.ParseWeekday(name); !ok {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidSettings, name)
		}
	}

	return nil
}

func validateWorkWindow(settings *model.Settings) error {
	if settings.WorkTimeStart == nil || settings.WorkTimeEnd == nil {
		return nil
	}
	if *settings.WorkTimeEnd <= *settings.WorkTimeStart {
		return fmt.Errorf("%w: end %v is not after start %v",
			availability.ErrInvalidWorkWindow, *settings.WorkTimeEnd, *settings.WorkTimeStart)
	}
	return nil
}
