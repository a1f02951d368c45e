package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/chirp/internal/apperrors"
	"github.com/thereayou/chirp/internal/database"
	"github.com/thereayou/chirp/internal/handlers/dto"
	"github.com/thereayou/chirp/internal/middleware"
	"github.com/thereayou/chirp/internal/models"
)

const (
	tweetsPerPage = 10
	maxTweetLen   = 280
)

type TweetHandler struct {
	db *database.Database
}

func NewTweetHandler(db *database.Database) *TweetHandler {
	return &TweetHandler{db: db}
}

// requireOwner — только автор распоряжается своим твитом.
func requireOwner(ownerID, requesterID uuid.UUID) error {
	if ownerID != requesterID {
		return apperrors.ErrForbidden
	}
	return nil
}

// Index отдает ленту твитов с пагинацией; is_liked проставляется
// только аутентифицированному зрителю
func (h *TweetHandler) Index(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	tweets, pagination, err := h.db.ListTweets(page, tweetsPerPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load tweets"})
		return
	}

	liked := map[uuid.UUID]bool{}
	viewerID, authenticated := middleware.Viewer(c)
	if authenticated {
		ids := make([]uuid.UUID, len(tweets))
		for i, tweet := range tweets {
			ids[i] = tweet.ID
		}
		liked, err = h.db.LikedTweetIDs(viewerID, ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load tweets"})
			return
		}
	}

	views := make([]dto.TweetResponse, len(tweets))
	for i, tweet := range tweets {
		var isLiked *bool
		if authenticated {
			v := liked[tweet.ID]
			isLiked = &v
		}
		views[i] = dto.NewTweetResponse(&tweet, isLiked)
	}

	c.JSON(http.StatusOK, gin.H{"tweets": views, "pagination": pagination})
}

// Store создает твит
func (h *TweetHandler) Store(c *gin.Context) {
	var req dto.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrors(err)})
		return
	}

	// Лимит длины считается после обрезки пробелов.
	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"content": []string{"The content field is required."}},
		})
		return
	}
	if utf8.RuneCountInString(content) > maxTweetLen {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"content": []string{"The content may not be greater than 280 characters."}},
		})
		return
	}

	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	tweet := &models.Tweet{
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := h.db.SaveTweet(tweet); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create tweet"})
		return
	}

	created, err := h.db.GetTweet(tweet.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create tweet"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tweet": dto.NewTweetResponse(created, nil)})
}

// Show возвращает один твит
func (h *TweetHandler) Show(c *gin.Context) {
	tweetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "tweet not found"})
		return
	}

	tweet, err := h.db.GetTweet(tweetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "tweet not found"})
		return
	}

	var isLiked *bool
	if viewerID, ok := middleware.Viewer(c); ok {
		v, err := h.db.IsLikedBy(viewerID, tweetID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load tweet"})
			return
		}
		isLiked = &v
	}

	c.JSON(http.StatusOK, gin.H{"tweet": dto.NewTweetResponse(tweet, isLiked)})
}

// Destroy удаляет твит вместе с лайками; доступно только автору
func (h *TweetHandler) Destroy(c *gin.Context) {
	tweetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "tweet not found"})
		return
	}

	tweet, err := h.db.GetTweet(tweetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "tweet not found"})
		return
	}

	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	if err := requireOwner(tweet.UserID, userID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized to delete this tweet"})
		return
	}

	if err := h.db.DeleteTweet(tweetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete tweet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tweet deleted successfully"})
}

// ToggleLike ставит или снимает лайк и возвращает актуальный счетчик
func (h *TweetHandler) ToggleLike(c *gin.Context) {
	tweetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "tweet not found"})
		return
	}

	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	result, err := h.db.ToggleLike(userID, tweetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "tweet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tweet": gin.H{
		"id":          tweetID,
		"likes_count": result.LikesCount,
		"is_liked":    result.Liked,
	}})
}
