package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/thereayou/chirp/internal/apperrors"
	"github.com/thereayou/chirp/internal/database"
	"github.com/thereayou/chirp/internal/models"
	"github.com/thereayou/chirp/pkg/auth"
)

const (
	UserIDKey  = "userID"
	UserKey    = "currentUser"
	TokenIDKey = "tokenID"
)

// AuthMiddleware проверяет bearer-токен и кладет пользователя в контекст
func AuthMiddleware(db *database.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, tokenID, err := authenticate(c, db, redisClient)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
			c.Abort()
			return
		}

		setIdentity(c, user, tokenID)
		c.Next()
	}
}

// OptionalAuthMiddleware — то же самое, но запрос без заголовка Authorization
// проходит анонимно. Предъявленный невалидный токен все равно дает 401.
func OptionalAuthMiddleware(db *database.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		user, tokenID, err := authenticate(c, db, redisClient)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
			c.Abort()
			return
		}

		setIdentity(c, user, tokenID)
		c.Next()
	}
}

func setIdentity(c *gin.Context, user *models.User, tokenID uuid.UUID) {
	c.Set(UserIDKey, user.ID)
	c.Set(UserKey, user)
	c.Set(TokenIDKey, tokenID)
}

// Viewer возвращает id аутентифицированного пользователя, если он есть.
func Viewer(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	return v.(uuid.UUID), true
}

func authenticate(c *gin.Context, db *database.Database, redisClient *redis.Client) (*models.User, uuid.UUID, error) {
	raw, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		return nil, uuid.Nil, apperrors.ErrInvalidToken
	}

	tokenID, secret, err := auth.Parse(raw)
	if err != nil {
		return nil, uuid.Nil, apperrors.ErrInvalidToken
	}

	// Черный список в Redis — быстрый путь; решающее слово за revoked_at в базе.
	if redisClient != nil {
		exists, err := redisClient.Exists(c.Request.Context(), "blacklist:"+tokenID.String()).Result()
		if err == nil && exists > 0 {
			return nil, uuid.Nil, apperrors.ErrInvalidToken
		}
	}

	token, err := db.GetToken(tokenID)
	if err != nil {
		return nil, uuid.Nil, apperrors.ErrInvalidToken
	}
	if token.RevokedAt != nil {
		return nil, uuid.Nil, apperrors.ErrInvalidToken
	}
	if !auth.VerifySecret(secret, token.SecretHash) {
		return nil, uuid.Nil, apperrors.ErrInvalidToken
	}

	user, err := db.GetUser(token.UserID)
	if err != nil {
		return nil, uuid.Nil, apperrors.ErrInvalidToken
	}

	return user, token.ID, nil
}
