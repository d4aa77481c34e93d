package app

import (
	"errors"
	"fmt"

	"buildlink_backend/database"
	"buildlink_backend/internal/auth"
	"buildlink_backend/internal/config"
	"buildlink_backend/internal/email"
	"buildlink_backend/internal/handlers"
	"buildlink_backend/internal/logger"
	"buildlink_backend/internal/middleware"
	"buildlink_backend/internal/models"
	"buildlink_backend/internal/routes"
	"buildlink_backend/internal/services"
	"buildlink_backend/internal/storage"
	"buildlink_backend/internal/validator"
	"buildlink_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("admin seeding failed", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter assembles the full gin engine: storage, services, handlers,
// WebSocket manager and routes. Split out so tests can build the router
// against their own database handle.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	store, err := storage.New(cfg)
	if err != nil {
		logger.Fatal("storage initialization failed", "error", err)
	}
	logger.Info("storage initialized", "type", cfg.Storage.Type)

	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		emailProvider = email.NewSMTPProvider(cfg)
	} else {
		logger.Warn("SMTP not configured, using mock email provider")
		emailProvider = &MockEmailProvider{}
	}

	serviceContainer := services.NewServiceContainer(cfg, store, emailProvider)

	wsManager := ws.NewManager()
	go wsManager.Run()
	wsHandler := ws.NewHandler(wsManager)

	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New(), wsManager)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(gormDB))

	routes.RegisterRoutes(router, appHandlers, wsHandler)
	return router
}

// seedFirstAdmin creates the bootstrap admin account when configured and
// missing. User and profile go in one transaction.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("first admin credentials not set, skipping admin seeding")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var existing models.User
	result := tx.Where("email = ?", cfg.FirstAdminEmail).First(&existing)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := tx.Create(admin).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	logger.Info("first admin user created", "email", cfg.FirstAdminEmail)
	return tx.Commit().Error
}
