package dto

import (
	"time"

	"buildlink_backend/internal/models"
)

type CreateEngagementRequest struct {
	Kind        models.EngagementKind `json:"kind" binding:"required" validate:"required,oneof=architect interior"`
	Title       string                `json:"title" binding:"required" validate:"required,min=3,max=200"`
	Description string                `json:"description" validate:"max=5000"`
	Budget      *float64              `json:"budget,omitempty" validate:"omitempty,min=0"`
	WorkerID    *string               `json:"worker_id,omitempty"`
}

type SendProposalRequest struct {
	Price       float64 `json:"price" binding:"required" validate:"required,min=0"`
	Description string  `json:"description" binding:"required" validate:"required,min=3,max=5000"`
}

type AddProjectUpdateRequest struct {
	Note     string  `json:"note" binding:"required" validate:"required,min=1,max=5000"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type ProposalResponse struct {
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	SentAt      time.Time `json:"sent_at"`
}

type EngagementResponse struct {
	ID            string                  `json:"id"`
	Kind          models.EngagementKind   `json:"kind"`
	CustomerID    string                  `json:"customer_id"`
	WorkerID      *string                 `json:"worker_id,omitempty"`
	Status        models.EngagementStatus `json:"status"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description,omitempty"`
	Budget        *float64                `json:"budget,omitempty"`
	PaymentStatus models.PaymentStatus    `json:"payment_status"`
	Proposal      *ProposalResponse       `json:"proposal,omitempty"`
	Completion    int                     `json:"completion_percentage"`
	Milestones    []*MilestoneResponse    `json:"milestones,omitempty"`
	Review        *ReviewResponse         `json:"review,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

type EngagementListResponse struct {
	Engagements []*EngagementResponse `json:"engagements"`
	Total       int64                 `json:"total"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	TotalPages  int                   `json:"total_pages"`
}

type ProjectUpdateResponse struct {
	ID        string    `json:"id"`
	WorkerID  string    `json:"worker_id"`
	Note      string    `json:"note"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
