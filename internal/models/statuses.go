package models

type UserStatus string
type UserRole string
type Specialization string
type EngagementKind string
type EngagementStatus string
type MilestoneStatus string
type HiringStatus string
type PaymentStatus string
type SenderKind string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleCustomer UserRole = "customer"
	UserRoleWorker   UserRole = "worker"
	UserRoleCompany  UserRole = "company"
	UserRoleAdmin    UserRole = "admin"

	SpecializationArchitect        Specialization = "architect"
	SpecializationInteriorDesigner Specialization = "interior_designer"

	// EngagementKind doubles as the chat project type for engagements;
	// hiring offers use ProjectTypeHiring.
	EngagementKindArchitect EngagementKind = "architect"
	EngagementKindInterior  EngagementKind = "interior"

	EngagementStatusPending      EngagementStatus = "pending"
	EngagementStatusProposalSent EngagementStatus = "proposal_sent"
	EngagementStatusAccepted     EngagementStatus = "accepted"
	EngagementStatusRejected     EngagementStatus = "rejected"
	EngagementStatusCompleted    EngagementStatus = "completed"

	MilestoneStatusPending           MilestoneStatus = "pending"
	MilestoneStatusApproved          MilestoneStatus = "approved"
	MilestoneStatusRejected          MilestoneStatus = "rejected"
	MilestoneStatusRevisionRequested MilestoneStatus = "revision_requested"
	MilestoneStatusUnderReview       MilestoneStatus = "under_review"

	HiringStatusPending  HiringStatus = "pending"
	HiringStatusAccepted HiringStatus = "accepted"
	HiringStatusRejected HiringStatus = "rejected"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"

	SenderKindCustomer SenderKind = "customer"
	SenderKindWorker   SenderKind = "worker"
	SenderKindCompany  SenderKind = "company"
)

// ProjectTypeHiring is the chat association kind for company hiring offers.
const ProjectTypeHiring = "hiring"

func ValidSenderKind(k SenderKind) bool {
	switch k {
	case SenderKindCustomer, SenderKindWorker, SenderKindCompany:
		return true
	}
	return false
}

func ValidProjectType(t string) bool {
	switch t {
	case string(EngagementKindArchitect), string(EngagementKindInterior), ProjectTypeHiring:
		return true
	}
	return false
}
