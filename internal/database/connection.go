package database

import (
	"errors"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func (d *Database) Connect() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	// TranslateError нужен, чтобы нарушение уникальности приходило
	// как gorm.ErrDuplicatedKey независимо от драйвера.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	d.db = db

	return d.Migrate()
}
