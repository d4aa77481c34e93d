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

// EngagementService manages the engagement lifecycle up to the review gate:
// the customer opens an engagement, the worker answers with a proposal, the
// customer accepts or rejects it. Completion happens only through the review
// gate once both sides have reviewed.
type EngagementService interface {
	CreateEngagement(db *gorm.DB, customerID string, req *dto.CreateEngagementRequest) (*dto.EngagementResponse, error)
	GetEngagement(db *gorm.DB, engagementID, userID string) (*dto.EngagementResponse, error)
	ListForCustomer(db *gorm.DB, customerID string, page, pageSize int) (*dto.EngagementListResponse, error)
	ListForWorker(db *gorm.DB, workerID string, page, pageSize int) (*dto.EngagementListResponse, error)

	SendProposal(db *gorm.DB, engagementID, workerID string, req *dto.SendProposalRequest) (*dto.EngagementResponse, error)
	AcceptProposal(db *gorm.DB, engagementID, customerID string) (*dto.EngagementResponse, error)
	RejectProposal(db *gorm.DB, engagementID, customerID string) (*dto.EngagementResponse, error)
	MarkPaid(db *gorm.DB, engagementID, customerID string) (*dto.EngagementResponse, error)

	AddUpdate(db *gorm.DB, engagementID, workerID string, req *dto.AddProjectUpdateRequest) (*dto.ProjectUpdateResponse, error)
	ListUpdates(db *gorm.DB, engagementID, userID string) ([]*dto.ProjectUpdateResponse, error)
}

type engagementService struct {
	engagementRepo repositories.EngagementRepository
	userRepo       repositories.UserRepository
	emailProvider  email.Provider
}

func NewEngagementService(
	engagementRepo repositories.EngagementRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) EngagementService {
	return &engagementService{
		engagementRepo: engagementRepo,
		userRepo:       userRepo,
		emailProvider:  emailProvider,
	}
}

func (s *engagementService) CreateEngagement(db *gorm.DB, customerID string, req *dto.CreateEngagementRequest) (*dto.EngagementResponse, error) {
	if req.WorkerID != nil {
		worker, err := s.userRepo.FindByID(db, *req.WorkerID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		if worker.Role != models.UserRoleWorker {
			return nil, apperrors.ErrInvalidInput("engagement", "Selected user is not a worker")
		}
	}

	engagement := &models.Engagement{
		Kind:        req.Kind,
		CustomerID:  customerID,
		WorkerID:    req.WorkerID,
		Status:      models.EngagementStatusPending,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
	}
	if err := s.engagementRepo.Create(db, engagement); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return engagementToResponse(engagement), nil
}

func (s *engagementService) GetEngagement(db *gorm.DB, engagementID, userID string) (*dto.EngagementResponse, error) {
	engagement, err := s.findAsParty(db, engagementID, userID)
	if err != nil {
		return nil, err
	}
	return engagementToResponse(engagement), nil
}

func (s *engagementService) ListForCustomer(db *gorm.DB, customerID string, page, pageSize int) (*dto.EngagementListResponse, error) {
	offset := (page - 1) * pageSize
	engagements, total, err := s.engagementRepo.FindByCustomer(db, customerID, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return engagementListResponse(engagements, total, page, pageSize), nil
}

func (s *engagementService) ListForWorker(db *gorm.DB, workerID string, page, pageSize int) (*dto.EngagementListResponse, error) {
	offset := (page - 1) * pageSize
	engagements, total, err := s.engagementRepo.FindByWorker(db, workerID, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return engagementListResponse(engagements, total, page, pageSize), nil
}

func (s *engagementService) SendProposal(db *gorm.DB, engagementID, workerID string, req *dto.SendProposalRequest) (*dto.EngagementResponse, error) {
	engagement, err := s.engagementRepo.FindByID(db, engagementID)
	if err != nil {
		if errors.Is(err, repositories.ErrEngagementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if engagement.HasWorker() {
		if !engagement.IsWorker(workerID) {
			return nil, apperrors.ErrNotAuthorized("engagement", "Engagement is assigned to another worker")
		}
	} else {
		// Open engagement: the first worker to respond claims it.
		if err := s.engagementRepo.AssignWorker(db, engagementID, workerID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if engagement.Status != models.EngagementStatusPending {
		return nil, apperrors.ErrInvalidState("engagement", "A proposal can only be sent while the engagement is pending")
	}

	sentAt := time.Now()
	if err := s.engagementRepo.SaveProposal(db, engagementID, req.Price, req.Description, sentAt); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyCustomer(db, engagement, req.Price)

	updated, err := s.engagementRepo.FindByID(db, engagementID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return engagementToResponse(updated), nil
}

func (s *engagementService) AcceptProposal(db *gorm.DB, engagementID, customerID string) (*dto.EngagementResponse, error) {
	return s.decideProposal(db, engagementID, customerID, models.EngagementStatusAccepted)
}

func (s *engagementService) RejectProposal(db *gorm.DB, engagementID, customerID string) (*dto.EngagementResponse, error) {
	return s.decideProposal(db, engagementID, customerID, models.EngagementStatusRejected)
}

func (s *engagementService) decideProposal(db *gorm.DB, engagementID, customerID string, status models.EngagementStatus) (*dto.EngagementResponse, error) {
	engagement, err := s.engagementRepo.FindByID(db, engagementID)
	if err != nil {
		if errors.Is(err, repositories.ErrEngagementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !engagement.IsCustomer(customerID) {
		return nil, apperrors.ErrNotAuthorized("engagement", "Only the customer can decide on a proposal")
	}
	if engagement.Status != models.EngagementStatusProposalSent {
		return nil, apperrors.ErrInvalidState("engagement", "There is no open proposal to decide on")
	}
	if status == models.EngagementStatusAccepted && !engagement.HasWorker() {
		return nil, apperrors.ErrInvalidState("engagement", "Cannot accept without an assigned worker")
	}

	if err := s.engagementRepo.UpdateStatus(db, engagementID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if status == models.EngagementStatusAccepted {
		s.notifyWorkerAccepted(db, engagement)
	}

	engagement.Status = status
	return engagementToResponse(engagement), nil
}

func (s *engagementService) MarkPaid(db *gorm.DB, engagementID, customerID string) (*dto.EngagementResponse, error) {
	engagement, err := s.findAsParty(db, engagementID, customerID)
	if err != nil {
		return nil, err
	}
	if !engagement.IsCustomer(customerID) {
		return nil, apperrors.ErrNotAuthorized("engagement", "Only the customer can mark the engagement paid")
	}

	if err := s.engagementRepo.UpdatePaymentStatus(db, engagementID, models.PaymentStatusPaid); err != nil {
		return nil, apperrors.InternalError(err)
	}
	engagement.PaymentStatus = models.PaymentStatusPaid
	return engagementToResponse(engagement), nil
}

func (s *engagementService) AddUpdate(db *gorm.DB, engagementID, workerID string, req *dto.AddProjectUpdateRequest) (*dto.ProjectUpdateResponse, error) {
	engagement, err := s.engagementRepo.FindByID(db, engagementID)
	if err != nil {
		if errors.Is(err, repositories.ErrEngagementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !engagement.IsWorker(workerID) {
		return nil, apperrors.ErrNotAuthorized("engagement", "Only the assigned worker can post updates")
	}
	if engagement.Status != models.EngagementStatusAccepted {
		return nil, apperrors.ErrInvalidState("engagement", "Updates can only be posted on an accepted engagement")
	}

	update := &models.ProjectUpdate{
		EngagementID: engagementID,
		WorkerID:     workerID,
		Note:         req.Note,
		ImageURL:     req.ImageURL,
	}
	if err := s.engagementRepo.AddUpdate(db, update); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return projectUpdateToResponse(update), nil
}

func (s *engagementService) ListUpdates(db *gorm.DB, engagementID, userID string) ([]*dto.ProjectUpdateResponse, error) {
	if _, err := s.findAsParty(db, engagementID, userID); err != nil {
		return nil, err
	}

	updates, err := s.engagementRepo.FindUpdates(db, engagementID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.ProjectUpdateResponse, 0, len(updates))
	for i := range updates {
		responses = append(responses, projectUpdateToResponse(&updates[i]))
	}
	return responses, nil
}

func (s *engagementService) findAsParty(db *gorm.DB, engagementID, userID string) (*models.Engagement, error) {
	engagement, err := s.engagementRepo.FindByID(db, engagementID)
	if err != nil {
		if errors.Is(err, repositories.ErrEngagementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !engagement.IsCustomer(userID) && !engagement.IsWorker(userID) {
		return nil, apperrors.ErrNotAuthorized("engagement", "Not a party of this engagement")
	}
	return engagement, nil
}

func (s *engagementService) notifyCustomer(db *gorm.DB, engagement *models.Engagement, price float64) {
	if s.emailProvider == nil {
		return
	}
	customer, err := s.userRepo.FindByID(db, engagement.CustomerID)
	if err != nil {
		logger.WithError(err).Warn("proposal notification skipped", "engagement_id", engagement.ID)
		return
	}
	subject, body := email.ProposalSentBody(engagement.Title, price)
	if err := s.emailProvider.Send(customer.Email, subject, body); err != nil {
		logger.WithError(err).Warn("proposal notification failed", "engagement_id", engagement.ID)
	}
}

func (s *engagementService) notifyWorkerAccepted(db *gorm.DB, engagement *models.Engagement) {
	if s.emailProvider == nil || !engagement.HasWorker() {
		return
	}
	worker, err := s.userRepo.FindByID(db, *engagement.WorkerID)
	if err != nil {
		logger.WithError(err).Warn("acceptance notification skipped", "engagement_id", engagement.ID)
		return
	}
	subject, body := email.ProposalAcceptedBody(engagement.Title)
	if err := s.emailProvider.Send(worker.Email, subject, body); err != nil {
		logger.WithError(err).Warn("acceptance notification failed", "engagement_id", engagement.ID)
	}
}

func engagementToResponse(e *models.Engagement) *dto.EngagementResponse {
	resp := &dto.EngagementResponse{
		ID:            e.ID,
		Kind:          e.Kind,
		CustomerID:    e.CustomerID,
		WorkerID:      e.WorkerID,
		Status:        e.Status,
		Title:         e.Title,
		Description:   e.Description,
		Budget:        e.Budget,
		PaymentStatus: e.PaymentStatus,
		Completion:    models.CompletionPercentage(e.Milestones),
		CreatedAt:     e.CreatedAt,
	}
	if e.HasProposal() {
		resp.Proposal = &dto.ProposalResponse{
			Price:       derefFloat(e.ProposalPrice),
			Description: derefString(e.ProposalDescription),
			SentAt:      *e.ProposalSentAt,
		}
	}
	for i := range e.Milestones {
		resp.Milestones = append(resp.Milestones, milestoneToResponse(&e.Milestones[i]))
	}
	if e.Review != nil {
		resp.Review = reviewToResponse(e.Review)
	}
	return resp
}

func engagementListResponse(engagements []models.Engagement, total int64, page, pageSize int) *dto.EngagementListResponse {
	responses := make([]*dto.EngagementResponse, 0, len(engagements))
	for i := range engagements {
		responses = append(responses, engagementToResponse(&engagements[i]))
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &dto.EngagementListResponse{
		Engagements: responses,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}

func projectUpdateToResponse(u *models.ProjectUpdate) *dto.ProjectUpdateResponse {
	return &dto.ProjectUpdateResponse{
		ID:        u.ID,
		WorkerID:  u.WorkerID,
		Note:      u.Note,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
