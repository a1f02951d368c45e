package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/chirp/internal/models"
)

// Длина контента проверяется в хендлере после обрезки пробелов,
// поэтому здесь только required.
type CreateTweetRequest struct {
	Content string `json:"content" binding:"required"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// TweetResponse — проекция твита для ответа. IsLiked заполняется только
// когда известен аутентифицированный зритель.
type TweetResponse struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"user_id"`
	Content    string      `json:"content"`
	LikesCount int         `json:"likes_count"`
	CreatedAt  time.Time   `json:"created_at"`
	User       UserSummary `json:"user"`
	IsLiked    *bool       `json:"is_liked,omitempty"`
}

func NewTweetResponse(tweet *models.Tweet, isLiked *bool) TweetResponse {
	return TweetResponse{
		ID:         tweet.ID,
		UserID:     tweet.UserID,
		Content:    tweet.Content,
		LikesCount: tweet.LikesCount,
		CreatedAt:  tweet.CreatedAt,
		User: UserSummary{
			ID:    tweet.User.ID,
			Name:  tweet.User.Name,
			Email: tweet.User.Email,
		},
		IsLiked: isLiked,
	}
}
