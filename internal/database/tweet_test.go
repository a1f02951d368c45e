package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/chirp/internal/apperrors"
)

func TestListTweets_Pagination(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Author", "author@example.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		createTestTweet(t, db, author.ID, fmt.Sprintf("tweet %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	tweets, pagination, err := db.ListTweets(2, 10)
	require.NoError(t, err)

	require.Len(t, tweets, 10)
	assert.Equal(t, 2, pagination.CurrentPage)
	assert.Equal(t, 3, pagination.LastPage)
	assert.Equal(t, 10, pagination.PerPage)
	assert.EqualValues(t, 25, pagination.Total)

	// Новые первыми: страница 2 — это твиты 11..20 с конца.
	assert.Equal(t, "tweet 14", tweets[0].Content)
	assert.Equal(t, "tweet 5", tweets[9].Content)

	tweets, pagination, err = db.ListTweets(3, 10)
	require.NoError(t, err)
	assert.Len(t, tweets, 5)
	assert.Equal(t, 3, pagination.LastPage)

	tweets, _, err = db.ListTweets(4, 10)
	require.NoError(t, err)
	assert.Empty(t, tweets)
}

func TestListTweets_EmptyFeed(t *testing.T) {
	db := setupTestDB(t)

	tweets, pagination, err := db.ListTweets(1, 10)
	require.NoError(t, err)
	assert.Empty(t, tweets)
	assert.Equal(t, 1, pagination.LastPage)
	assert.EqualValues(t, 0, pagination.Total)
}

func TestListTweets_PreloadsAuthor(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Author", "author@example.com")
	createTestTweet(t, db, author.ID, "hello", time.Now())

	tweets, _, err := db.ListTweets(1, 10)
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	assert.Equal(t, "Author", tweets[0].User.Name)
	assert.Equal(t, "author@example.com", tweets[0].User.Email)
}

func TestDeleteTweet_CascadesLikes(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Author", "author@example.com")
	liker := createTestUser(t, db, "Liker", "liker@example.com")
	tweet := createTestTweet(t, db, author.ID, "doomed", time.Now())

	_, err := db.ToggleLike(liker.ID, tweet.ID)
	require.NoError(t, err)
	_, err = db.ToggleLike(author.ID, tweet.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, countLikes(t, db, tweet.ID))

	require.NoError(t, db.DeleteTweet(tweet.ID))

	_, err = db.GetTweet(tweet.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.EqualValues(t, 0, countLikes(t, db, tweet.ID))
}

func TestDeleteTweet_Missing(t *testing.T) {
	db := setupTestDB(t)
	err := db.DeleteTweet(uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLikedTweetIDs(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Author", "author@example.com")
	viewer := createTestUser(t, db, "Viewer", "viewer@example.com")

	first := createTestTweet(t, db, author.ID, "first", time.Now())
	second := createTestTweet(t, db, author.ID, "second", time.Now())

	_, err := db.ToggleLike(viewer.ID, first.ID)
	require.NoError(t, err)

	liked, err := db.LikedTweetIDs(viewer.ID, []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)
	assert.True(t, liked[first.ID])
	assert.False(t, liked[second.ID])

	liked, err = db.LikedTweetIDs(viewer.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, liked)
}
