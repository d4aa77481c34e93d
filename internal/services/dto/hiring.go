package dto

import (
	"time"

	"buildlink_backend/internal/models"
)

type CreateHiringOfferRequest struct {
	WorkerID string   `json:"worker_id" binding:"required" validate:"required"`
	Message  string   `json:"message,omitempty" validate:"max=2000"`
	Salary   *float64 `json:"salary,omitempty" validate:"omitempty,min=0"`
}

type HiringOfferResponse struct {
	ID        string              `json:"id"`
	CompanyID string              `json:"company_id"`
	WorkerID  string              `json:"worker_id"`
	Status    models.HiringStatus `json:"status"`
	Message   string              `json:"message,omitempty"`
	Salary    *float64            `json:"salary,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}
