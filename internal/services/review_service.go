package services

import (
	"errors"
	"time"

	"buildlink_backend/internal/logger"
	"buildlink_backend/internal/models"
	"buildlink_backend/internal/repositories"
	"buildlink_backend/internal/services/dto"
	"buildlink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ReviewService is the post-completion review gate. A side may submit its
// review only once the engagement's approved progress reached 100%; each side
// submits at most once, and when both sides are in, the review is marked
// completed and the engagement flips to completed. Every submission is
// denormalized onto the counterpart's profile and their aggregate rating is
// recomputed.
type ReviewService interface {
	SubmitReview(db *gorm.DB, engagementID, userID string, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error)
	GetReview(db *gorm.DB, engagementID, userID string) (*dto.ReviewResponse, error)
	ListProfileReviews(db *gorm.DB, subjectID string, page, pageSize int) (*dto.ProfileReviewListResponse, error)
}

type reviewService struct {
	reviewRepo     repositories.ReviewRepository
	engagementRepo repositories.EngagementRepository
	milestoneRepo  repositories.MilestoneRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	engagementRepo repositories.EngagementRepository,
	milestoneRepo repositories.MilestoneRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		engagementRepo: engagementRepo,
		milestoneRepo:  milestoneRepo,
	}
}

func (s *reviewService) SubmitReview(db *gorm.DB, engagementID, userID string, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ErrInvalidInput("review", "Rating must be between 1 and 5")
	}

	engagement, err := s.engagementRepo.FindByID(db, engagementID)
	if err != nil {
		if errors.Is(err, repositories.ErrEngagementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	side, err := reviewSideFor(engagement, userID)
	if err != nil {
		return nil, err
	}

	milestones, err := s.milestoneRepo.FindByEngagement(db, engagementID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !models.IsEligibleForReview(milestones) {
		return nil, apperrors.ErrReviewNotEligible
	}

	review, err := s.reviewRepo.FindByEngagement(db, engagementID)
	if err != nil && !errors.Is(err, repositories.ErrReviewNotFound) {
		return nil, apperrors.InternalError(err)
	}
	if review == nil {
		review = &models.EngagementReview{EngagementID: engagementID}
	}
	if review.SideSubmitted(side) {
		return nil, apperrors.ErrAlreadyReviewed
	}

	now := time.Now()
	comment := req.Comment
	rating := req.Rating
	switch side {
	case models.ReviewSideCustomer:
		review.CustomerRating = &rating
		review.CustomerComment = &comment
		review.CustomerSubmittedAt = &now
	case models.ReviewSideWorker:
		review.WorkerRating = &rating
		review.WorkerComment = &comment
		review.WorkerSubmittedAt = &now
	}

	bothIn := review.BothSidesSubmitted()
	review.IsCompleted = bothIn

	if review.ID == "" {
		err = s.reviewRepo.Create(db, review)
	} else {
		err = s.reviewRepo.Update(db, review)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if bothIn {
		if err := s.engagementRepo.UpdateStatus(db, engagementID, models.EngagementStatusCompleted); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := s.denormalize(db, engagement, side, userID, rating, comment); err != nil {
		// The review row is the source of truth; a failed denormalization is
		// recoverable by recomputing, so it only gets logged.
		logger.WithError(err).Warn("profile rating denormalization failed", "engagement_id", engagementID)
	}

	return reviewToResponse(review), nil
}

// denormalize appends a profile review for the counterpart and recomputes
// their aggregate rating as the mean of all received ratings.
func (s *reviewService) denormalize(db *gorm.DB, engagement *models.Engagement, side models.ReviewSide, authorID string, rating int, comment string) error {
	var subjectID string
	var subjectRole models.UserRole
	switch side {
	case models.ReviewSideCustomer:
		if !engagement.HasWorker() {
			return nil
		}
		subjectID = *engagement.WorkerID
		subjectRole = models.UserRoleWorker
	case models.ReviewSideWorker:
		subjectID = engagement.CustomerID
		subjectRole = models.UserRoleCustomer
	}

	profileReview := &models.ProfileReview{
		SubjectID:    subjectID,
		AuthorID:     authorID,
		EngagementID: engagement.ID,
		Rating:       rating,
		Comment:      comment,
	}
	if err := s.reviewRepo.CreateProfileReview(db, profileReview); err != nil {
		return err
	}
	return s.reviewRepo.RecalculateRating(db, subjectID, subjectRole)
}

func (s *reviewService) GetReview(db *gorm.DB, engagementID, userID string) (*dto.ReviewResponse, error) {
	engagement, err := s.engagementRepo.FindByID(db, engagementID)
	if err != nil {
		if errors.Is(err, repositories.ErrEngagementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !engagement.IsCustomer(userID) && !engagement.IsWorker(userID) {
		return nil, apperrors.ErrNotAuthorized("review", "Not a party of this engagement")
	}

	review, err := s.reviewRepo.FindByEngagement(db, engagementID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return reviewToResponse(review), nil
}

func (s *reviewService) ListProfileReviews(db *gorm.DB, subjectID string, page, pageSize int) (*dto.ProfileReviewListResponse, error) {
	offset := (page - 1) * pageSize
	reviews, total, err := s.reviewRepo.FindProfileReviews(db, subjectID, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.ProfileReviewResponse, 0, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		responses = append(responses, &dto.ProfileReviewResponse{
			ID:           r.ID,
			AuthorID:     r.AuthorID,
			EngagementID: r.EngagementID,
			Rating:       r.Rating,
			Comment:      r.Comment,
			CreatedAt:    r.CreatedAt,
		})
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &dto.ProfileReviewListResponse{
		Reviews:    responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// reviewSideFor maps the caller onto their side of the review pair.
func reviewSideFor(engagement *models.Engagement, userID string) (models.ReviewSide, error) {
	switch {
	case engagement.IsCustomer(userID):
		return models.ReviewSideCustomer, nil
	case engagement.IsWorker(userID):
		return models.ReviewSideWorker, nil
	}
	return "", apperrors.ErrNotAuthorized("review", "Not a party of this engagement")
}

func reviewToResponse(r *models.EngagementReview) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		EngagementID: r.EngagementID,
		IsCompleted:  r.IsCompleted,
	}
	if r.CustomerSubmittedAt != nil {
		resp.CustomerToWorker = &dto.ReviewSideResponse{
			Rating:      derefInt(r.CustomerRating),
			Comment:     derefString(r.CustomerComment),
			SubmittedAt: *r.CustomerSubmittedAt,
		}
	}
	if r.WorkerSubmittedAt != nil {
		resp.WorkerToCustomer = &dto.ReviewSideResponse{
			Rating:      derefInt(r.WorkerRating),
			Comment:     derefString(r.WorkerComment),
			SubmittedAt: *r.WorkerSubmittedAt,
		}
	}
	return resp
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
