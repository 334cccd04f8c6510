package model

import (
	"time"

	"github.com/google/uuid"
)

// Share ссылка-приглашение владельца календаря.
// Токен служит учётными данными для внешних участников и не ротируется.
type Share struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Token     string    `json:"share_token"`
	CreatedAt time.Time `json:"created_at"`
}
