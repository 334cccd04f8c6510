package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/meeting_bot/internal/model"
	"github.com/Freeeeeet/meeting_bot/internal/repository/base"
	"github.com/google/uuid"
)

type UserRepository struct {
	db base.DBTX
}

func NewUserRepository(db base.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query := `
		INSERT INTO users (id, external_id, name, username)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, user.ID, user.ExternalID, user.Name, user.Username).Scan(&user.CreatedAt)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create user: %w", model.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByExternalID получает пользователя по идентификатору мессенджера
func (r *UserRepository) GetByExternalID(ctx context.Context, externalID int64) (*model.User, error) {
	query := `
		SELECT id, external_id, name, username, created_at
		FROM users
		WHERE external_id = $1
	`

	var user model.User
	err := r.db.QueryRow(ctx, query, externalID).Scan(
		&user.ID,
		&user.ExternalID,
		&user.Name,
		&user.Username,
		&user.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by external id: %w", err)
	}

	return &user, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, external_id, name, username, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.ExternalID,
		&user.Name,
		&user.Username,
		&user.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

// Update обновляет имя и username; остальные поля неизменяемы
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET name = $1, username = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, user.Name, user.Username, user.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// LockForUpdate блокирует строку пользователя до конца транзакции.
// Сериализует проверку пересечений и вставку личных встреч одного пользователя.
func (r *UserRepository) LockForUpdate(ctx context.Context, id uuid.UUID) error {
	query := `SELECT id FROM users WHERE id = $1 FOR UPDATE`

	var locked uuid.UUID
	if err := r.db.QueryRow(ctx, query, id).Scan(&locked); err != nil {
		return fmt.Errorf("lock user: %w", err)
	}

	return nil
}
