package database

import (
	"gorm.io/gorm"

	"github.com/nutriday/backend/internal/models"
)

// Migrate runs the schema migrations for all persistent models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
	)
}
