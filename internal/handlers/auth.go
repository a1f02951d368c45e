package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/chirp/internal/apperrors"
	"github.com/thereayou/chirp/internal/database"
	"github.com/thereayou/chirp/internal/handlers/dto"
	"github.com/thereayou/chirp/internal/middleware"
	"github.com/thereayou/chirp/internal/models"
	"github.com/thereayou/chirp/pkg/auth"
)

// Ключи черного списка живут сутки: к этому моменту revoked_at в базе
// давно отбивает токен и без кэша.
const blacklistTTL = 24 * time.Hour

type AuthHandler struct {
	db    *database.Database
	redis *redis.Client
}

func NewAuthHandler(db *database.Database, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{db: db, redis: rdb}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrors(err)})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "cannot hash password"})
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := h.db.SaveUser(user); err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"errors": gin.H{"email": []string{"The email has already been taken."}},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// Фиктивный хэш, чтобы ветка с неизвестным email тратила столько же
// времени на bcrypt, сколько ветка с неверным паролем.
var dummyPasswordHash, _ = bcrypt.GenerateFromPassword([]byte("chirp dummy password"), bcrypt.DefaultCost)

// Login не различает неизвестный email и неверный пароль
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrors(err)})
		return
	}

	user, err := h.db.FindUserByEmail(req.Email)
	if err != nil {
		bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(req.Password))
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Logout отзывает предъявленный токен; ?all=1 отзывает все сессии пользователя
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := c.MustGet(middleware.TokenIDKey).(uuid.UUID)
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var err error
	if c.Query("all") != "" {
		err = h.db.RevokeUserTokens(userID)
	} else {
		err = h.db.RevokeToken(tokenID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not revoke token"})
		return
	}

	h.blacklist(c, tokenID)

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Refresh выдает новый токен и отзывает предъявленный
func (h *AuthHandler) Refresh(c *gin.Context) {
	tokenID := c.MustGet(middleware.TokenIDKey).(uuid.UUID)
	user := c.MustGet(middleware.UserKey).(*models.User)

	token, err := h.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not issue token"})
		return
	}

	if err := h.db.RevokeToken(tokenID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not revoke token"})
		return
	}
	h.blacklist(c, tokenID)

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me возвращает текущего пользователя
func (h *AuthHandler) Me(c *gin.Context) {
	user := c.MustGet(middleware.UserKey).(*models.User)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// issueToken создает сессионный токен; открытый вид отдается только здесь,
// в базе остается хэш секрета.
func (h *AuthHandler) issueToken(user *models.User) (string, error) {
	tokenID := uuid.New()
	plaintext, secretHash, err := auth.Issue(tokenID)
	if err != nil {
		return "", err
	}

	token := &models.AuthToken{
		ID:         tokenID,
		UserID:     user.ID,
		SecretHash: secretHash,
		CreatedAt:  time.Now(),
	}
	if err := h.db.SaveToken(token); err != nil {
		return "", err
	}
	return plaintext, nil
}

func (h *AuthHandler) blacklist(c *gin.Context, tokenID uuid.UUID) {
	if h.redis == nil {
		return
	}
	h.redis.Set(c.Request.Context(), "blacklist:"+tokenID.String(), 1, blacklistTTL)
}
