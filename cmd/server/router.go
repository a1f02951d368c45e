package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/chirp/internal/database"
	"github.com/thereayou/chirp/internal/handlers"
	"github.com/thereayou/chirp/internal/middleware"
)

func APIEndpoints(r *gin.Engine, authH *handlers.AuthHandler, tweetH *handlers.TweetHandler, db *database.Database, rdb *redis.Client) {
	// Auth endpoints
	r.POST("/register", authH.Register)
	r.POST("/login", authH.Login)

	// Лента читается и анонимно, is_liked появляется только с токеном
	public := r.Group("/", middleware.OptionalAuthMiddleware(db, rdb))
	{
		public.GET("/tweets", tweetH.Index)
		public.GET("/tweets/:id", tweetH.Show)
	}

	authorized := r.Group("/", middleware.AuthMiddleware(db, rdb))
	{
		authorized.POST("/logout", authH.Logout)
		authorized.POST("/refresh", authH.Refresh)
		authorized.GET("/me", authH.Me)

		authorized.POST("/tweets", tweetH.Store)
		authorized.DELETE("/tweets/:id", tweetH.Destroy)
		authorized.POST("/tweets/:id/like", tweetH.ToggleLike)
	}
}
