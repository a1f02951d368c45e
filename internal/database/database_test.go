package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thereayou/chirp/internal/models"
)

func setupTestDB(t *testing.T) *Database {
	dbPath := filepath.Join(t.TempDir(), "chirp_test.db")

	// _txlock=immediate сериализует пишущие транзакции в sqlite,
	// иначе конкурентные тесты упираются в database is locked.
	// _foreign_keys=on — sqlite по умолчанию не проверяет внешние ключи.
	gdb, err := gorm.Open(sqlite.Open("file:"+dbPath+"?_busy_timeout=5000&_txlock=immediate&_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	db := NewDatabase(gdb)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createTestUser(t *testing.T, db *Database, name, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.SaveUser(user))
	return user
}

func createTestTweet(t *testing.T, db *Database, userID uuid.UUID, content string, createdAt time.Time) *models.Tweet {
	t.Helper()
	tweet := &models.Tweet{
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.SaveTweet(tweet))
	return tweet
}

func countLikes(t *testing.T, db *Database, tweetID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.db.Model(&models.Like{}).Where("tweet_id = ?", tweetID).Count(&count).Error)
	return count
}
