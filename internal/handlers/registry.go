package handlers

import (
	"buildlink_backend/internal/services"
	"buildlink_backend/internal/validator"
	"buildlink_backend/ws"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	ProfileHandler    *ProfileHandler
	EngagementHandler *EngagementHandler
	MilestoneHandler  *MilestoneHandler
	ReviewHandler     *ReviewHandler
	ChatHandler       *ChatHandler
	HiringHandler     *HiringHandler
	FileHandler       *FileHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator, wsManager *ws.Manager) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:       NewAuthHandler(base, sc.AuthService),
		ProfileHandler:    NewProfileHandler(base, sc.ProfileService),
		EngagementHandler: NewEngagementHandler(base, sc.EngagementService),
		MilestoneHandler:  NewMilestoneHandler(base, sc.MilestoneService),
		ReviewHandler:     NewReviewHandler(base, sc.ReviewService),
		ChatHandler:       NewChatHandler(base, sc.ChatService, wsManager),
		HiringHandler:     NewHiringHandler(base, sc.HiringService),
		FileHandler:       NewFileHandler(base, sc.UploadService),
	}
}
