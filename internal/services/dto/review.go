package dto

import "time"

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"max=2000"`
}

type ReviewSideResponse struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type ReviewResponse struct {
	EngagementID     string              `json:"engagement_id"`
	CustomerToWorker *ReviewSideResponse `json:"customer_to_worker,omitempty"`
	WorkerToCustomer *ReviewSideResponse `json:"worker_to_customer,omitempty"`
	IsCompleted      bool                `json:"is_review_completed"`
}

type ProfileReviewResponse struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	EngagementID string    `json:"engagement_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProfileReviewListResponse struct {
	Reviews    []*ProfileReviewResponse `json:"reviews"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalPages int                      `json:"total_pages"`
}
