package services

import (
	"errors"

	"buildlink_backend/internal/models"
	"buildlink_backend/internal/repositories"
	"buildlink_backend/internal/services/dto"
	"buildlink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// HiringService handles direct company-to-worker offers. An accepted offer
// becomes chat-worthy under the "hiring" project type.
type HiringService interface {
	CreateOffer(db *gorm.DB, companyID string, req *dto.CreateHiringOfferRequest) (*dto.HiringOfferResponse, error)
	AcceptOffer(db *gorm.DB, offerID, workerID string) (*dto.HiringOfferResponse, error)
	RejectOffer(db *gorm.DB, offerID, workerID string) (*dto.HiringOfferResponse, error)
	ListForWorker(db *gorm.DB, workerID string) ([]*dto.HiringOfferResponse, error)
	ListForCompany(db *gorm.DB, companyID string) ([]*dto.HiringOfferResponse, error)
}

type hiringService struct {
	hiringRepo repositories.HiringRepository
	userRepo   repositories.UserRepository
}

func NewHiringService(hiringRepo repositories.HiringRepository, userRepo repositories.UserRepository) HiringService {
	return &hiringService{hiringRepo: hiringRepo, userRepo: userRepo}
}

func (s *hiringService) CreateOffer(db *gorm.DB, companyID string, req *dto.CreateHiringOfferRequest) (*dto.HiringOfferResponse, error) {
	worker, err := s.userRepo.FindByID(db, req.WorkerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if worker.Role != models.UserRoleWorker {
		return nil, apperrors.ErrInvalidInput("hiring", "Offers can only be sent to workers")
	}

	offer := &models.HiringOffer{
		CompanyID: companyID,
		WorkerID:  req.WorkerID,
		Status:    models.HiringStatusPending,
		Message:   req.Message,
		Salary:    req.Salary,
	}
	if err := s.hiringRepo.Create(db, offer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return hiringOfferToResponse(offer), nil
}

func (s *hiringService) AcceptOffer(db *gorm.DB, offerID, workerID string) (*dto.HiringOfferResponse, error) {
	return s.decide(db, offerID, workerID, models.HiringStatusAccepted)
}

func (s *hiringService) RejectOffer(db *gorm.DB, offerID, workerID string) (*dto.HiringOfferResponse, error) {
	return s.decide(db, offerID, workerID, models.HiringStatusRejected)
}

func (s *hiringService) decide(db *gorm.DB, offerID, workerID string, status models.HiringStatus) (*dto.HiringOfferResponse, error) {
	offer, err := s.hiringRepo.FindByID(db, offerID)
	if err != nil {
		if errors.Is(err, repositories.ErrHiringOfferNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if offer.WorkerID != workerID {
		return nil, apperrors.ErrNotAuthorized("hiring", "Only the offered worker can decide")
	}

	if err := s.hiringRepo.DecideIfPending(db, offerID, status); err != nil {
		if errors.Is(err, repositories.ErrHiringOfferDecided) {
			return nil, apperrors.ErrInvalidState("hiring", "Offer has already been decided")
		}
		return nil, apperrors.InternalError(err)
	}

	offer.Status = status
	return hiringOfferToResponse(offer), nil
}

func (s *hiringService) ListForWorker(db *gorm.DB, workerID string) ([]*dto.HiringOfferResponse, error) {
	offers, err := s.hiringRepo.FindByWorker(db, workerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return hiringOffersToResponses(offers), nil
}

func (s *hiringService) ListForCompany(db *gorm.DB, companyID string) ([]*dto.HiringOfferResponse, error) {
	offers, err := s.hiringRepo.FindByCompany(db, companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return hiringOffersToResponses(offers), nil
}

func hiringOffersToResponses(offers []models.HiringOffer) []*dto.HiringOfferResponse {
	responses := make([]*dto.HiringOfferResponse, 0, len(offers))
	for i := range offers {
		responses = append(responses, hiringOfferToResponse(&offers[i]))
	}
	return responses
}

func hiringOfferToResponse(o *models.HiringOffer) *dto.HiringOfferResponse {
	return &dto.HiringOfferResponse{
		ID:        o.ID,
		CompanyID: o.CompanyID,
		WorkerID:  o.WorkerID,
		Status:    o.Status,
		Message:   o.Message,
		Salary:    o.Salary,
		CreatedAt: o.CreatedAt,
	}
}
