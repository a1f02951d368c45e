package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/chirp/internal/apperrors"
	"github.com/thereayou/chirp/internal/models"
	"gorm.io/gorm"
)

func (d *Database) SaveToken(token *models.AuthToken) error {
	return d.db.Create(token).Error
}

func (d *Database) GetToken(id uuid.UUID) (*models.AuthToken, error) {
	token := models.AuthToken{}
	if err := d.db.First(&token, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// RevokeToken помечает один токен отозванным, остальные сессии
// пользователя не затрагивает.
func (d *Database) RevokeToken(id uuid.UUID) error {
	return d.db.Model(&models.AuthToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now()).Error
}

// RevokeUserTokens отзывает все токены пользователя разом.
func (d *Database) RevokeUserTokens(userID uuid.UUID) error {
	return d.db.Model(&models.AuthToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now()).Error
}
