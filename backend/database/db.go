package database

import (
	"fmt"

	"portfolio-app/backend/config"
	"portfolio-app/backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() error {
	var err error
	DB, err = gorm.Open(sqlite.Open(config.C.DatabaseURL), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	return Migrate(DB)
}

// Migrate creates tables and indexes for every collection, including the
// dormant dashboard_data one.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Portfolio{},
		&models.Holding{},
		&models.DashboardEntry{},
		&models.LogEntry{},
	)
}
