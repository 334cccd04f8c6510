package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"go.uber.org/zap"
)

type UserService struct {
	repos  Repositories
	tx     Transactor
	logger *zap.Logger
}

func NewUserService(repos Repositories, tx Transactor, logger *zap.Logger) *UserService {
	return &UserService{
		repos:  repos,
		tx:     tx,
		logger: logger,
	}
}

// RegisterUser регистрирует пользователя вместе с пустыми настройками
// или обновляет имя у уже известного
func (s *UserService) RegisterUser(ctx context.Context, externalID int64, name, username string) (*model.User, error) {
	existingUser, err := s.repos.Users.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	if existingUser != nil {
		return s.refreshUser(ctx, existingUser, name, username)
	}

	user := &model.User{
		ExternalID: externalID,
		Name:       name,
		Username:   username,
	}

	err = s.tx.InTx(ctx, func(r Repositories) error {
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
		return r.Settings.Create(ctx, &model.Settings{UserID: user.ID})
	})
	if err != nil {
		// Параллельная регистрация того же пользователя
		if errors.Is(err, model.ErrConflict) {
			existingUser, getErr := s.repos.Users.GetByExternalID(ctx, externalID)
			if getErr != nil {
				return nil, fmt.Errorf("get user after conflict: %w", getErr)
			}
			if existingUser != nil {
				return existingUser, nil
			}
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.String("user_id", user.ID.String()),
		zap.Int64("external_id", externalID),
		zap.String("username", username),
	)

	return user, nil
}

func (s *UserService) refreshUser(ctx context.Context, user *model.User, name, username string) (*model.User, error) {
	if user.Name == name && user.Username == username {
		return user, nil
	}

	user.Name = name
	user.Username = username
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("User updated",
		zap.Int64("external_id", user.ExternalID),
		zap.String("username", username),
	)

	return user, nil
}

// GetByExternalID получает пользователя по идентификатору мессенджера
func (s *UserService) GetByExternalID(ctx context.Context, externalID int64) (*model.User, error) {
	user, err := s.repos.Users.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
