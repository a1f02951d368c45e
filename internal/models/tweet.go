package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tweet хранит кэшированный счетчик лайков; источник истины — строки Like.
type Tweet struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Content    string    `gorm:"not null" json:"content"`
	LikesCount int       `gorm:"not null;default:0" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`

	// Связи
	User User `gorm:"foreignKey:UserID" json:"user"`
}

func (t *Tweet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
