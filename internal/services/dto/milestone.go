package dto

import (
	"time"

	"buildlink_backend/internal/models"
)

type SubmitMilestoneRequest struct {
	Percentage  int     `json:"percentage" binding:"required" validate:"required,milestone_pct"`
	Description string  `json:"description" binding:"required" validate:"required,min=1,max=5000"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type RejectMilestoneRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=2000"`
}

type RequestRevisionRequest struct {
	Notes string `json:"notes" binding:"required" validate:"required,min=1,max=2000"`
}

type ReportMilestoneRequest struct {
	Report string `json:"report" binding:"required" validate:"required,min=1,max=2000"`
}

type MilestoneResponse struct {
	ID           string                 `json:"id"`
	EngagementID string                 `json:"engagement_id"`
	Percentage   int                    `json:"percentage"`
	Status       models.MilestoneStatus `json:"status"`
	Description  string                 `json:"description"`
	ImageURL     *string                `json:"image_url,omitempty"`

	SubmittedAt         time.Time  `json:"submitted_at"`
	ApprovedAt          *time.Time `json:"approved_at,omitempty"`
	RejectedAt          *time.Time `json:"rejected_at,omitempty"`
	RevisionRequestedAt *time.Time `json:"revision_requested_at,omitempty"`
	ReportedToAdminAt   *time.Time `json:"reported_to_admin_at,omitempty"`

	RejectionReason *string `json:"rejection_reason,omitempty"`
	RevisionNotes   *string `json:"revision_notes,omitempty"`
	AdminReport     *string `json:"admin_report,omitempty"`
}

type CompletionResponse struct {
	EngagementID         string `json:"engagement_id"`
	CompletionPercentage int    `json:"completion_percentage"`
	EligibleForReview    bool   `json:"eligible_for_review"`
}
