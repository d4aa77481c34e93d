package dto

import (
	"time"

	"buildlink_backend/internal/models"
)

type ResolveRoomRequest struct {
	AssociationID string `json:"association_id" binding:"required" validate:"required"`
	Kind          string `json:"kind" binding:"required" validate:"required,oneof=architect interior hiring"`
}

type PostMessageRequest struct {
	Content string `json:"content" binding:"required" validate:"required,min=1,max=5000"`
}

type RoomResponse struct {
	RoomID      string    `json:"room_id"`
	ProjectID   string    `json:"project_id"`
	ProjectType string    `json:"project_type"`
	CustomerID  *string   `json:"customer_id,omitempty"`
	WorkerID    string    `json:"worker_id"`
	CompanyID   *string   `json:"company_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type MessageResponse struct {
	ID         string            `json:"id"`
	RoomID     string            `json:"room_id"`
	SenderID   string            `json:"sender_id"`
	SenderKind models.SenderKind `json:"sender_kind"`
	Content    string            `json:"content"`
	CreatedAt  time.Time         `json:"created_at"`
}

type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
	Total    int64              `json:"total"`
}
