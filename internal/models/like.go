package models

import (
	"time"

	"github.com/google/uuid"
)

// Like — связь многие-ко-многим между User и Tweet.
// Составной первичный ключ гарантирует не больше одного лайка на пару,
// внешний ключ не дает лайку пережить свой твит.
type Like struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	TweetID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"tweet_id"`
	CreatedAt time.Time `json:"created_at"`

	// Связи
	Tweet Tweet `gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE" json:"-"`
}
