package services

import (
	"errors"
	"time"

	"buildlink_backend/internal/email"
	"buildlink_backend/internal/logger"
	"buildlink_backend/internal/models"
	"buildlink_backend/internal/repositories"
	"buildlink_backend/internal/services/dto"
	"buildlink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MilestoneService drives the percentage-milestone state machine of an
// engagement. A worker submits work against one of the fixed percentage slots
// (25/50/75/100); the customer then approves, rejects, requests a revision or
// reports the milestone to an admin. All customer decisions are written with a
// pending-state guard so two racing decisions cannot both apply.
type MilestoneService interface {
	SubmitMilestone(db *gorm.DB, engagementID, workerID string, req *dto.SubmitMilestoneRequest) (*dto.MilestoneResponse, error)
	ApproveMilestone(db *gorm.DB, milestoneID, customerID string) (*dto.MilestoneResponse, error)
	RejectMilestone(db *gorm.DB, milestoneID, customerID string, req *dto.RejectMilestoneRequest) (*dto.MilestoneResponse, error)
	RequestRevision(db *gorm.DB, milestoneID, customerID string, req *dto.RequestRevisionRequest) (*dto.MilestoneResponse, error)
	ReportToAdmin(db *gorm.DB, milestoneID, customerID string, req *dto.ReportMilestoneRequest) (*dto.MilestoneResponse, error)

	ListMilestones(db *gorm.DB, engagementID, userID string) ([]*dto.MilestoneResponse, error)
	GetCompletion(db *gorm.DB, engagementID, userID string) (*dto.CompletionResponse, error)
}

type milestoneService struct {
	milestoneRepo  repositories.MilestoneRepository
	engagementRepo repositories.EngagementRepository
	userRepo       repositories.UserRepository
	emailProvider  email.Provider
}

func NewMilestoneService(
	milestoneRepo repositories.MilestoneRepository,
	engagementRepo repositories.EngagementRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) MilestoneService {
	return &milestoneService{
		milestoneRepo:  milestoneRepo,
		engagementRepo: engagementRepo,
		userRepo:       userRepo,
		emailProvider:  emailProvider,
	}
}

func (s *milestoneService) SubmitMilestone(db *gorm.DB, engagementID, workerID string, req *dto.SubmitMilestoneRequest) (*dto.MilestoneResponse, error) {
	if !models.ValidMilestonePercentage(req.Percentage) {
		return nil, apperrors.ErrInvalidInput("milestone", "Percentage must be one of 25, 50, 75, 100")
	}

	engagement, err := s.engagementRepo.FindByID(db, engagementID)
	if err != nil {
		if errors.Is(err, repositories.ErrEngagementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !engagement.IsWorker(workerID) {
		return nil, apperrors.ErrNotAuthorized("milestone", "Only the assigned worker can submit milestones")
	}
	if engagement.Status != models.EngagementStatusAccepted {
		return nil, apperrors.ErrInvalidState("milestone", "Milestones can only be submitted on an accepted engagement")
	}

	existing, err := s.milestoneRepo.FindByEngagementAndPercentage(db, engagementID, req.Percentage)
	if err != nil && !errors.Is(err, repositories.ErrMilestoneNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if existing == nil {
		milestone := &models.Milestone{
			EngagementID: engagementID,
			Percentage:   req.Percentage,
			Status:       models.MilestoneStatusPending,
			Description:  req.Description,
			ImageURL:     req.ImageURL,
			SubmittedAt:  time.Now(),
		}
		if err := s.milestoneRepo.Create(db, milestone); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return milestoneToResponse(milestone), nil
	}

	// Occupied slot: only a rejected or revision-requested milestone may be
	// replaced by a fresh pending submission.
	if !existing.IsResubmittable() {
		return nil, apperrors.ErrInvalidState("milestone", "This percentage slot already has an active milestone")
	}

	if err := s.milestoneRepo.ResetSlot(db, existing.ID, req.Description, req.ImageURL, time.Now()); err != nil {
		if errors.Is(err, repositories.ErrMilestoneStateChanged) {
			return nil, apperrors.ErrInvalidState("milestone", "Milestone state changed, please reload and retry")
		}
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.milestoneRepo.FindByID(db, existing.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return milestoneToResponse(updated), nil
}

func (s *milestoneService) ApproveMilestone(db *gorm.DB, milestoneID, customerID string) (*dto.MilestoneResponse, error) {
	return s.decide(db, milestoneID, customerID, "approved", map[string]interface{}{
		"status":      models.MilestoneStatusApproved,
		"approved_at": time.Now(),
	})
}

func (s *milestoneService) RejectMilestone(db *gorm.DB, milestoneID, customerID string, req *dto.RejectMilestoneRequest) (*dto.MilestoneResponse, error) {
	updates := map[string]interface{}{
		"status":      models.MilestoneStatusRejected,
		"rejected_at": time.Now(),
	}
	if req.Reason != "" {
		updates["rejection_reason"] = req.Reason
	}
	return s.decide(db, milestoneID, customerID, "rejected", updates)
}

func (s *milestoneService) RequestRevision(db *gorm.DB, milestoneID, customerID string, req *dto.RequestRevisionRequest) (*dto.MilestoneResponse, error) {
	if req.Notes == "" {
		return nil, apperrors.ErrInvalidInput("milestone", "Revision notes are required")
	}
	return s.decide(db, milestoneID, customerID, "sent back for revision", map[string]interface{}{
		"status":                models.MilestoneStatusRevisionRequested,
		"revision_requested_at": time.Now(),
		"revision_notes":        req.Notes,
	})
}

func (s *milestoneService) ReportToAdmin(db *gorm.DB, milestoneID, customerID string, req *dto.ReportMilestoneRequest) (*dto.MilestoneResponse, error) {
	if req.Report == "" {
		return nil, apperrors.ErrInvalidInput("milestone", "A report text is required")
	}
	return s.decide(db, milestoneID, customerID, "reported", map[string]interface{}{
		"status":               models.MilestoneStatusUnderReview,
		"reported_to_admin_at": time.Now(),
		"admin_report":         req.Report,
	})
}

// decide applies one customer decision to a pending milestone. The repository
// write carries a pending-state guard; a failed guard means another decision
// landed first and the caller gets an InvalidState error instead of a silent
// overwrite.
func (s *milestoneService) decide(db *gorm.DB, milestoneID, customerID, decision string, updates map[string]interface{}) (*dto.MilestoneResponse, error) {
	milestone, err := s.milestoneRepo.FindByID(db, milestoneID)
	if err != nil {
		if errors.Is(err, repositories.ErrMilestoneNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	engagement, err := s.engagementRepo.FindByID(db, milestone.EngagementID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !engagement.IsCustomer(customerID) {
		return nil, apperrors.ErrNotAuthorized("milestone", "Only the engagement customer can decide on milestones")
	}
	if milestone.Status != models.MilestoneStatusPending {
		return nil, apperrors.ErrInvalidState("milestone", "Only a pending milestone can be decided on")
	}

	if err := s.milestoneRepo.TransitionFromPending(db, milestoneID, updates); err != nil {
		if errors.Is(err, repositories.ErrMilestoneStateChanged) {
			return nil, apperrors.ErrInvalidState("milestone", "Milestone was already decided on")
		}
		return nil, apperrors.InternalError(err)
	}

	s.notifyDecision(db, engagement, milestone.Percentage, decision)

	updated, err := s.milestoneRepo.FindByID(db, milestoneID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return milestoneToResponse(updated), nil
}

// notifyDecision mails the worker about the customer's decision. Best-effort:
// a delivery failure is logged and never fails the decision itself.
func (s *milestoneService) notifyDecision(db *gorm.DB, engagement *models.Engagement, percentage int, decision string) {
	if s.emailProvider == nil || !engagement.HasWorker() {
		return
	}
	worker, err := s.userRepo.FindByID(db, *engagement.WorkerID)
	if err != nil {
		logger.WithError(err).Warn("milestone notification skipped", "engagement_id", engagement.ID)
		return
	}
	subject, body := email.MilestoneDecisionBody(engagement.Title, percentage, decision)
	if err := s.emailProvider.Send(worker.Email, subject, body); err != nil {
		logger.WithError(err).Warn("milestone notification failed", "engagement_id", engagement.ID)
	}
}

func (s *milestoneService) ListMilestones(db *gorm.DB, engagementID, userID string) ([]*dto.MilestoneResponse, error) {
	engagement, err := s.engagementRepo.FindByID(db, engagementID)
	if err != nil {
		if errors.Is(err, repositories.ErrEngagementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !engagement.IsCustomer(userID) && !engagement.IsWorker(userID) {
		return nil, apperrors.ErrNotAuthorized("milestone", "Not a party of this engagement")
	}

	milestones, err := s.milestoneRepo.FindByEngagement(db, engagementID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.MilestoneResponse, 0, len(milestones))
	for i := range milestones {
		responses = append(responses, milestoneToResponse(&milestones[i]))
	}
	return responses, nil
}

func (s *milestoneService) GetCompletion(db *gorm.DB, engagementID, userID string) (*dto.CompletionResponse, error) {
	engagement, err := s.engagementRepo.FindByID(db, engagementID)
	if err != nil {
		if errors.Is(err, repositories.ErrEngagementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !engagement.IsCustomer(userID) && !engagement.IsWorker(userID) {
		return nil, apperrors.ErrNotAuthorized("milestone", "Not a party of this engagement")
	}

	milestones, err := s.milestoneRepo.FindByEngagement(db, engagementID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CompletionResponse{
		EngagementID:         engagementID,
		CompletionPercentage: models.CompletionPercentage(milestones),
		EligibleForReview:    models.IsEligibleForReview(milestones),
	}, nil
}

func milestoneToResponse(m *models.Milestone) *dto.MilestoneResponse {
	return &dto.MilestoneResponse{
		ID:                  m.ID,
		EngagementID:        m.EngagementID,
		Percentage:          m.Percentage,
		Status:              m.Status,
		Description:         m.Description,
		ImageURL:            m.ImageURL,
		SubmittedAt:         m.SubmittedAt,
		ApprovedAt:          m.ApprovedAt,
		RejectedAt:          m.RejectedAt,
		RevisionRequestedAt: m.RevisionRequestedAt,
		ReportedToAdminAt:   m.ReportedToAdminAt,
		RejectionReason:     m.RejectionReason,
		RevisionNotes:       m.RevisionNotes,
		AdminReport:         m.AdminReport,
	}
}
