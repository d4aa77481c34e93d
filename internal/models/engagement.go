package models

import "time"

// Engagement is one customer-to-worker job: an architect hiring or an
// interior-design request. The Kind discriminator keeps both record kinds in
// one table so the milestone and review flows operate on a single shape.
type Engagement struct {
	BaseModel
	Kind          EngagementKind   `gorm:"type:varchar(20);not null;index"`
	CustomerID    string           `gorm:"not null;index"`
	WorkerID      *string          `gorm:"index"`
	Status        EngagementStatus `gorm:"type:varchar(20);default:'pending'"`
	Title         string           `gorm:"not null"`
	Description   string
	Budget        *float64
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'pending'"`

	// Proposal, set once the worker responds.
	ProposalPrice       *float64
	ProposalDescription *string
	ProposalSentAt      *time.Time

	// Relations
	Milestones []Milestone       `gorm:"foreignKey:EngagementID"`
	Updates    []ProjectUpdate   `gorm:"foreignKey:EngagementID"`
	Review     *EngagementReview `gorm:"foreignKey:EngagementID"`
	Customer   *User             `gorm:"foreignKey:CustomerID"`
	Worker     *User             `gorm:"foreignKey:WorkerID"`
}

func (e *Engagement) HasWorker() bool {
	return e.WorkerID != nil && *e.WorkerID != ""
}

func (e *Engagement) IsWorker(userID string) bool {
	return e.WorkerID != nil && *e.WorkerID == userID
}

func (e *Engagement) IsCustomer(userID string) bool {
	return e.CustomerID == userID
}

func (e *Engagement) HasProposal() bool {
	return e.ProposalSentAt != nil
}

// ChatWorthy reports whether the engagement is in a state where a chat room
// may be offered to its parties.
func (e *Engagement) ChatWorthy() bool {
	return e.HasWorker() &&
		(e.Status == EngagementStatusAccepted || e.Status == EngagementStatusCompleted)
}

// ProjectUpdate is one append-only progress note from the worker, with an
// optional attached image.
type ProjectUpdate struct {
	BaseModel
	EngagementID string `gorm:"not null;index"`
	WorkerID     string `gorm:"not null;index"`
	Note         string `gorm:"not null"`
	ImageURL     *string
}
