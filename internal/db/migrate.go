package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/adscalemedia/adsite-backend/internal/models"
)

// Migrate applies the schema for every persisted model.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.User{},
		&models.Inquiry{},
		&models.Session{},
		&models.Setting{},
	)
}
