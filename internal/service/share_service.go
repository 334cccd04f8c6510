package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/lithammer/shortuuid/v4"
	"go.uber.org/zap"
)

type ShareService struct {
	repos   Repositories
	baseURL string
	logger  *zap.Logger
}

func NewShareService(repos Repositories, baseURL string, logger *zap.Logger) *ShareService {
	return &ShareService{
		repos:   repos,
		baseURL: baseURL,
		logger:  logger,
	}
}

// GetShareToken возвращает токен ссылки-приглашения, создавая его при первом запросе
func (s *ShareService) GetShareToken(ctx context.Context, externalID int64) (string, error) {
	user, err := s.repos.Users.GetByExternalID(ctx, externalID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	share, err := s.repos.Shares.GetByOwnerID(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("get share: %w", err)
	}
	if share != nil {
		return share.Token, nil
	}

	share = &model.Share{
		OwnerID: user.ID,
		Token:   shortuuid.New(),
	}
	if err := s.repos.Shares.Create(ctx, share); err != nil {
		if !errors.Is(err, model.ErrConflict) {
			return "", fmt.Errorf("create share: %w", err)
		}

		// Ссылку уже создал параллельный запрос
		existing, getErr := s.repos.Shares.GetByOwnerID(ctx, user.ID)
		if getErr != nil {
			return "", fmt.Errorf("get share after conflict: %w", getErr)
		}
		if existing == nil {
			return "", fmt.Errorf("create share: %w", err)
		}
		return existing.Token, nil
	}

	s.logger.Info("Share link created",
		zap.String("user_id", user.ID.String()),
	)

	return share.Token, nil
}

// ShareLink возвращает ссылку-приглашение целиком
func (s *ShareService) ShareLink(ctx context.Context, externalID int64) (string, error) {
	token, err := s.GetShareToken(ctx, externalID)
	if err != nil {
		return "", err
	}
	return s.baseURL + token, nil
}
