package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken — сессионный токен. Секрет хранится только как sha256-хэш,
// открытый вид токена отдается клиенту один раз при выдаче.
type AuthToken struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SecretHash string    `gorm:"not null"`
	CreatedAt  time.Time
	RevokedAt  *time.Time
}
