package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/thereayou/chirp/internal/apperrors"
	"github.com/thereayou/chirp/internal/models"
	"gorm.io/gorm"
)

// SaveUser создает пользователя. Email приводится к нижнему регистру,
// так что уникальный индекс отсекает дубликаты без учета регистра
// атомарно с самой вставкой.
func (d *Database) SaveUser(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := d.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (d *Database) GetUser(id uuid.UUID) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
