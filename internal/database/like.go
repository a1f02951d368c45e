package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/thereayou/chirp/internal/apperrors"
	"github.com/thereayou/chirp/internal/models"
	"gorm.io/gorm"
)

type ToggleResult struct {
	Liked      bool
	LikesCount int
}

// errLikeGone: лайк исчез между проверкой и удалением — его успел снять
// параллельный toggle.
var errLikeGone = errors.New("like already removed")

// ToggleLike переключает лайк пары (user, tweet) и правит likes_count
// в одной транзакции. Проигранная гонка в обе стороны разрешается повтором:
// если параллельный запрос успел вставить лайк первым, вставка падает на
// первичном ключе; если успел снять — удаление не находит строку. В обоих
// случаях транзакция откатывается, и повторный проход видит уже
// зафиксированное состояние.
func (d *Database) ToggleLike(userID, tweetID uuid.UUID) (*ToggleResult, error) {
	res, err := d.toggleLike(userID, tweetID)
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, errLikeGone) {
		res, err = d.toggleLike(userID, tweetID)
	}
	return res, err
}

func (d *Database) toggleLike(userID, tweetID uuid.UUID) (*ToggleResult, error) {
	var res ToggleResult

	err := d.db.Transaction(func(tx *gorm.DB) error {
		var tweet models.Tweet
		if err := tx.First(&tweet, "id = ?", tweetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		var like models.Like
		err := tx.First(&like, "user_id = ? AND tweet_id = ?", userID, tweetID).Error
		switch {
		case err == nil:
			del := tx.Delete(&models.Like{}, "user_id = ? AND tweet_id = ?", userID, tweetID)
			if del.Error != nil {
				return del.Error
			}
			// Ноль строк — декрементить нечего, иначе счетчик уйдет в минус.
			if del.RowsAffected == 0 {
				return errLikeGone
			}
			if err := tx.Model(&models.Tweet{}).Where("id = ?", tweetID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error; err != nil {
				return err
			}
			res.Liked = false

		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Like{UserID: userID, TweetID: tweetID}).Error; err != nil {
				// Твит удалили, пока шла вставка — внешний ключ не дал
				// оставить осиротевший лайк.
				if errors.Is(err, gorm.ErrForeignKeyViolated) {
					return apperrors.ErrNotFound
				}
				return err
			}
			if err := tx.Model(&models.Tweet{}).Where("id = ?", tweetID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
				return err
			}
			res.Liked = true

		default:
			return err
		}

		// Отдаем счетчик после правки, из той же транзакции.
		return tx.Model(&models.Tweet{}).
			Select("likes_count").
			Where("id = ?", tweetID).
			Scan(&res.LikesCount).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
