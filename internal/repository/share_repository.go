package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/repository/base"
	"github.com/google/uuid"
)

type ShareRepository struct {
	db base.DBTX
}

func NewShareRepository(db base.DBTX) *ShareRepository {
	return &ShareRepository{db: db}
}

// Create сохраняет ссылку-приглашение
func (r *ShareRepository) Create(ctx context.Context, share *model.Share) error {
	if share.ID == uuid.Nil {
		share.ID = uuid.New()
	}

	query := `
		INSERT INTO shares (id, owner_id, share_token)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, share.ID, share.OwnerID, share.Token).Scan(&share.CreatedAt)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create share: %w", model.ErrConflict)
		}
		return fmt.Errorf("create share: %w", err)
	}

	return nil
}

// GetByToken получает ссылку по токену
func (r *ShareRepository) GetByToken(ctx context.Context, token string) (*model.Share, error) {
	query := `
		SELECT id, owner_id, share_token, created_at
		FROM shares
		WHERE share_token = $1
	`

	var share model.Share
	err := r.db.QueryRow(ctx, query, token).Scan(&share.ID, &share.OwnerID, &share.Token, &share.CreatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get share by token: %w", err)
	}

	return &share, nil
}

// GetByOwnerID получает ссылку владельца
func (r *ShareRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*model.Share, error) {
	query := `
		SELECT id, owner_id, share_token, created_at
		FROM shares
		WHERE owner_id = $1
	`

	var share model.Share
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&share.ID, &share.OwnerID, &share.Token, &share.CreatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get share by owner id: %w", err)
	}

	return &share, nil
}
