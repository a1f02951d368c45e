package server

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thereayou/chirp/internal/database"
	"github.com/thereayou/chirp/internal/handlers"
)

type Server struct {
	Router *gin.Engine
	DB     *database.Database
	Redis  *redis.Client
	AuthH  *handlers.AuthHandler
	TweetH *handlers.TweetHandler
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	// Redis держит черный список отозванных токенов; без него сервис
	// работает, полагаясь только на revoked_at в базе.
	var rdb *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisOpts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(redisOpts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Redis connect failed: %v", err)
		}
	} else {
		log.Println("REDIS_URL not set, token blacklist cache disabled")
	}

	authH := handlers.NewAuthHandler(dbConn, rdb)
	tweetH := handlers.NewTweetHandler(dbConn)

	router := gin.Default()
	APIEndpoints(router, authH, tweetH, dbConn, rdb)

	return &Server{
		Router: router,
		DB:     dbConn,
		Redis:  rdb,
		AuthH:  authH,
		TweetH: tweetH,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
