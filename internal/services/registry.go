package services

import (
	"buildlink_backend/internal/config"
	"buildlink_backend/internal/email"
	"buildlink_backend/internal/imageprocessor"
	"buildlink_backend/internal/repositories"
	"buildlink_backend/internal/storage"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService       AuthService
	ProfileService    ProfileService
	EngagementService EngagementService
	MilestoneService  MilestoneService
	ReviewService     ReviewService
	ChatService       ChatService
	HiringService     HiringService
	UploadService     UploadService
	EmailProvider     email.Provider
}

// NewServiceContainer wires repositories and shared infrastructure into the
// services.
func NewServiceContainer(cfg *config.Config, store storage.Storage, emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	engagementRepo := repositories.NewEngagementRepository()
	milestoneRepo := repositories.NewMilestoneRepository()
	reviewRepo := repositories.NewReviewRepository()
	chatRepo := repositories.NewChatRepository()
	hiringRepo := repositories.NewHiringRepository()
	uploadRepo := repositories.NewUploadRepository()

	processor := imageprocessor.NewProcessor(cfg.Upload.ImageQuality)

	return &ServiceContainer{
		AuthService:       NewAuthService(userRepo),
		ProfileService:    NewProfileService(userRepo),
		EngagementService: NewEngagementService(engagementRepo, userRepo, emailProvider),
		MilestoneService:  NewMilestoneService(milestoneRepo, engagementRepo, userRepo, emailProvider),
		ReviewService:     NewReviewService(reviewRepo, engagementRepo, milestoneRepo),
		ChatService:       NewChatService(chatRepo, engagementRepo, hiringRepo),
		HiringService:     NewHiringService(hiringRepo, userRepo),
		UploadService:     NewUploadService(uploadRepo, store, processor, cfg),
		EmailProvider:     emailProvider,
	}
}
