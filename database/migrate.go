package database

import (
	"fmt"

	"buildlink_backend/internal/config"
	"buildlink_backend/internal/models"
	chatmodels "buildlink_backend/internal/models/chat"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens (or reuses) the GORM connection built from config.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates the chat schema and migrates every model.
func AutoMigrate(db *gorm.DB) error {
	// Chat tables live in their own schema; AutoMigrate does not create it.
	if err := db.Exec("CREATE SCHEMA IF NOT EXISTS chat").Error; err != nil {
		return fmt.Errorf("create chat schema: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.WorkerProfile{},
		&models.CustomerProfile{},
		&models.CompanyProfile{},
		&models.ProfileReview{},
		&models.Engagement{},
		&models.ProjectUpdate{},
		&models.Milestone{},
		&models.EngagementReview{},
		&models.HiringOffer{},
		&models.Upload{},
		&chatmodels.Room{},
		&chatmodels.Message{},
	)
}
