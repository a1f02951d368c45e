package database

import (
	"github.com/thereayou/chirp/internal/models"
	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) Migrate() error {
	return d.db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Tweet{},
		&models.Like{},
	)
}
