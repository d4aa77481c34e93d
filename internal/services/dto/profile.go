package dto

import "buildlink_backend/internal/models"

type WorkerProfileResponse struct {
	UserID         string                `json:"user_id"`
	Specialization models.Specialization `json:"specialization"`
	Bio            string                `json:"bio,omitempty"`
	City           string                `json:"city,omitempty"`
	Skills         []string              `json:"skills,omitempty"`
	HourlyRate     *float64              `json:"hourly_rate,omitempty"`
	Rating         float64               `json:"rating"`
	ReviewsCount   int                   `json:"reviews_count"`
	IsAvailable    bool                  `json:"is_available"`
}

type WorkerListResponse struct {
	Workers    []*WorkerProfileResponse `json:"workers"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalPages int                      `json:"total_pages"`
}
