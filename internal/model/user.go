package model

import (
	"time"

	"github.com/google/uuid"
)

// User пользователь календаря, зарегистрированный через мессенджер
type User struct {
	ID         uuid.UUID `json:"id"`
	ExternalID int64     `json:"external_id"` // идентификатор в мессенджере, уникален
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"created_at"`
}
