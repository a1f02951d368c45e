package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/thereayou/chirp/internal/apperrors"
	"github.com/thereayou/chirp/internal/models"
	"gorm.io/gorm"
)

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

func (d *Database) SaveTweet(tweet *models.Tweet) error {
	return d.db.Create(tweet).Error
}

func (d *Database) GetTweet(id uuid.UUID) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := d.db.Preload("User").First(&tweet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &tweet, nil
}

// ListTweets возвращает страницу твитов, новые первыми. Вторичная сортировка
// по id держит порядок стабильным при одинаковом created_at.
func (d *Database) ListTweets(page, perPage int) ([]models.Tweet, *Pagination, error) {
	var total int64
	if err := d.db.Model(&models.Tweet{}).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var tweets []models.Tweet
	err := d.db.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Preload("User").
		Find(&tweets).Error
	if err != nil {
		return nil, nil, err
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return tweets, &Pagination{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}, nil
}

// IsLikedBy проверяет лайк по наличию строки Like, а не по счетчику.
func (d *Database) IsLikedBy(userID, tweetID uuid.UUID) (bool, error) {
	var count int64
	err := d.db.Model(&models.Like{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error
	return count > 0, err
}

// LikedTweetIDs возвращает множество твитов из tweetIDs, лайкнутых пользователем.
func (d *Database) LikedTweetIDs(userID uuid.UUID, tweetIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool)
	if len(tweetIDs) == 0 {
		return liked, nil
	}

	var likes []models.Like
	err := d.db.
		Where("user_id = ? AND tweet_id IN ?", userID, tweetIDs).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}

	for _, like := range likes {
		liked[like.TweetID] = true
	}
	return liked, nil
}

// DeleteTweet удаляет твит вместе с его лайками, чтобы не оставались
// строки Like на несуществующий твит.
func (d *Database) DeleteTweet(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Like{}, "tweet_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Tweet{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
