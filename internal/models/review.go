package models

import "time"

type ReviewSide string

const (
	ReviewSideCustomer ReviewSide = "customer"
	ReviewSideWorker   ReviewSide = "worker"
)

// EngagementReview is the bidirectional post-completion review pair, one row
// per engagement. Each side is written at most once; when both sides are
// present the review is completed and the engagement flips to completed.
type EngagementReview struct {
	BaseModel
	EngagementID string `gorm:"not null;uniqueIndex"`

	CustomerRating      *int `gorm:"check:customer_rating IS NULL OR (customer_rating >= 1 AND customer_rating <= 5)"`
	CustomerComment     *string
	CustomerSubmittedAt *time.Time

	WorkerRating      *int `gorm:"check:worker_rating IS NULL OR (worker_rating >= 1 AND worker_rating <= 5)"`
	WorkerComment     *string
	WorkerSubmittedAt *time.Time

	IsCompleted bool `gorm:"default:false"`
}

func (r *EngagementReview) SideSubmitted(side ReviewSide) bool {
	if r == nil {
		return false
	}
	switch side {
	case ReviewSideCustomer:
		return r.CustomerSubmittedAt != nil
	case ReviewSideWorker:
		return r.WorkerSubmittedAt != nil
	}
	return false
}

func (r *EngagementReview) BothSidesSubmitted() bool {
	return r != nil && r.CustomerSubmittedAt != nil && r.WorkerSubmittedAt != nil
}
