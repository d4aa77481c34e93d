package models

import "time"

// MilestonePercentages is the fixed set of delivery checkpoints. Each
// engagement holds at most one milestone per percentage value.
var MilestonePercentages = []int{25, 50, 75, 100}

type Milestone struct {
	BaseModel
	EngagementID string          `gorm:"not null;uniqueIndex:idx_milestones_engagement_pct"`
	Percentage   int             `gorm:"not null;uniqueIndex:idx_milestones_engagement_pct;check:percentage IN (25, 50, 75, 100)"`
	Status       MilestoneStatus `gorm:"type:varchar(20);default:'pending'"`
	Description  string          `gorm:"not null"`
	ImageURL     *string

	SubmittedAt         time.Time `gorm:"not null"`
	ApprovedAt          *time.Time
	RejectedAt          *time.Time
	RevisionRequestedAt *time.Time
	ReportedToAdminAt   *time.Time

	RejectionReason *string
	RevisionNotes   *string
	AdminReport     *string
}

func ValidMilestonePercentage(p int) bool {
	for _, v := range MilestonePercentages {
		if v == p {
			return true
		}
	}
	return false
}

// IsResubmittable reports whether the milestone's percentage slot may be
// occupied by a fresh submission. Only a rejected or revision-requested
// milestone frees its slot; pending, approved and under-review ones hold it.
func (m *Milestone) IsResubmittable() bool {
	return m.Status == MilestoneStatusRejected || m.Status == MilestoneStatusRevisionRequested
}

// CompletionPercentage is the sum of approved milestone percentages, capped
// at 100 so the reported progress stays within [0, 100] even when a late
// high-percentage milestone is approved on top of earlier ones.
func CompletionPercentage(milestones []Milestone) int {
	total := 0
	for _, m := range milestones {
		if m.Status == MilestoneStatusApproved {
			total += m.Percentage
		}
	}
	if total > 100 {
		total = 100
	}
	return total
}

// IsEligibleForReview reports whether approved progress reached 100%.
func IsEligibleForReview(milestones []Milestone) bool {
	return CompletionPercentage(milestones) >= 100
}
