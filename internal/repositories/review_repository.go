package repositories

import (
	"errors"

	"buildlink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
)

type ReviewRepository interface {
	FindByEngagement(db *gorm.DB, engagementID string) (*models.EngagementReview, error)
	Create(db *gorm.DB, review *models.EngagementReview) error
	Update(db *gorm.DB, review *models.EngagementReview) error

	// Denormalized profile reviews and aggregate rating maintenance.
	CreateProfileReview(db *gorm.DB, review *models.ProfileReview) error
	FindProfileReviews(db *gorm.DB, subjectID string, limit, offset int) ([]models.ProfileReview, int64, error)
	RecalculateRating(db *gorm.DB, subjectID string, role models.UserRole) error
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) FindByEngagement(db *gorm.DB, engagementID string) (*models.EngagementReview, error) {
	var review models.EngagementReview
	err := db.First(&review, "engagement_id = ?", engagementID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.EngagementReview) error {
	return db.Create(review).Error
}

func (r *ReviewRepositoryImpl) Update(db *gorm.DB, review *models.EngagementReview) error {
	return db.Save(review).Error
}

func (r *ReviewRepositoryImpl) CreateProfileReview(db *gorm.DB, review *models.ProfileReview) error {
	return db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindProfileReviews(db *gorm.DB, subjectID string, limit, offset int) ([]models.ProfileReview, int64, error) {
	var reviews []models.ProfileReview

	var total int64
	if err := db.Model(&models.ProfileReview{}).Where("subject_id = ?", subjectID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, total, err
}

// RecalculateRating recomputes the arithmetic mean of all received ratings
// and writes it to the subject's profile together with the review count.
func (r *ReviewRepositoryImpl) RecalculateRating(db *gorm.DB, subjectID string, role models.UserRole) error {
	var avgRating float64
	if err := db.Model(&models.ProfileReview{}).Where("subject_id = ?", subjectID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avgRating).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.ProfileReview{}).Where("subject_id = ?", subjectID).
		Count(&count).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{
		"rating":        avgRating,
		"reviews_count": count,
	}

	switch role {
	case models.UserRoleWorker:
		return db.Model(&models.WorkerProfile{}).Where("user_id = ?", subjectID).
			Updates(updates).Error
	case models.UserRoleCustomer:
		return db.Model(&models.CustomerProfile{}).Where("user_id = ?", subjectID).
			Updates(updates).Error
	}
	return nil
}
