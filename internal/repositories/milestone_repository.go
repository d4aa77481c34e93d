package repositories

import (
	"errors"
	"time"

	"buildlink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMilestoneNotFound = errors.New("milestone not found")
	// ErrMilestoneStateChanged is returned when a guarded transition finds the
	// milestone no longer in the expected pre-state at write time.
	ErrMilestoneStateChanged = errors.New("milestone is no longer in the expected state")
)

type MilestoneRepository interface {
	Create(db *gorm.DB, milestone *models.Milestone) error
	FindByID(db *gorm.DB, id string) (*models.Milestone, error)
	FindByEngagement(db *gorm.DB, engagementID string) ([]models.Milestone, error)
	FindByEngagementAndPercentage(db *gorm.DB, engagementID string, percentage int) (*models.Milestone, error)

	// ResetSlot reopens a rejected/revision-requested slot with a fresh
	// pending submission. The status guard keeps a racing decision from being
	// silently overwritten.
	ResetSlot(db *gorm.DB, milestoneID, description string, imageURL *string, submittedAt time.Time) error

	// TransitionFromPending applies a customer decision with a conditional
	// update: only a row still in pending status is written. Returns
	// ErrMilestoneStateChanged when the guard fails.
	TransitionFromPending(db *gorm.DB, milestoneID string, updates map[string]interface{}) error
}

type MilestoneRepositoryImpl struct{}

func NewMilestoneRepository() MilestoneRepository {
	return &MilestoneRepositoryImpl{}
}

func (r *MilestoneRepositoryImpl) Create(db *gorm.DB, milestone *models.Milestone) error {
	return db.Create(milestone).Error
}

func (r *MilestoneRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Milestone, error) {
	var milestone models.Milestone
	err := db.First(&milestone, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, err
	}
	return &milestone, nil
}

func (r *MilestoneRepositoryImpl) FindByEngagement(db *gorm.DB, engagementID string) ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := db.Where("engagement_id = ?", engagementID).
		Order("percentage ASC").
		Find(&milestones).Error
	return milestones, err
}

func (r *MilestoneRepositoryImpl) FindByEngagementAndPercentage(db *gorm.DB, engagementID string, percentage int) (*models.Milestone, error) {
	var milestone models.Milestone
	err := db.Where("engagement_id = ? AND percentage = ?", engagementID, percentage).
		First(&milestone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, err
	}
	return &milestone, nil
}

func (r *MilestoneRepositoryImpl) ResetSlot(db *gorm.DB, milestoneID, description string, imageURL *string, submittedAt time.Time) error {
	result := db.Model(&models.Milestone{}).
		Where("id = ? AND status IN ?", milestoneID, []models.MilestoneStatus{
			models.MilestoneStatusRejected,
			models.MilestoneStatusRevisionRequested,
		}).
		Updates(map[string]interface{}{
			"status":                models.MilestoneStatusPending,
			"description":           description,
			"image_url":             imageURL,
			"submitted_at":          submittedAt,
			"approved_at":           nil,
			"rejected_at":           nil,
			"revision_requested_at": nil,
			"reported_to_admin_at":  nil,
			"rejection_reason":      nil,
			"revision_notes":        nil,
			"admin_report":          nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMilestoneStateChanged
	}
	return nil
}

func (r *MilestoneRepositoryImpl) TransitionFromPending(db *gorm.DB, milestoneID string, updates map[string]interface{}) error {
	result := db.Model(&models.Milestone{}).
		Where("id = ? AND status = ?", milestoneID, models.MilestoneStatusPending).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMilestoneStateChanged
	}
	return nil
}
