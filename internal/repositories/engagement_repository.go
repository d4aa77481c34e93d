package repositories

import (
	"errors"
	"time"

	"buildlink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEngagementNotFound = errors.New("engagement not found")
)

type EngagementRepository interface {
	Create(db *gorm.DB, engagement *models.Engagement) error
	FindByID(db *gorm.DB, id string) (*models.Engagement, error)
	FindByCustomer(db *gorm.DB, customerID string, limit, offset int) ([]models.Engagement, int64, error)
	FindByWorker(db *gorm.DB, workerID string, limit, offset int) ([]models.Engagement, int64, error)
	Update(db *gorm.DB, engagement *models.Engagement) error
	UpdateStatus(db *gorm.DB, id string, status models.EngagementStatus) error
	AssignWorker(db *gorm.DB, id, workerID string) error
	SaveProposal(db *gorm.DB, id string, price float64, description string, sentAt time.Time) error
	UpdatePaymentStatus(db *gorm.DB, id string, status models.PaymentStatus) error

	AddUpdate(db *gorm.DB, update *models.ProjectUpdate) error
	FindUpdates(db *gorm.DB, engagementID string) ([]models.ProjectUpdate, error)
}

type EngagementRepositoryImpl struct{}

func NewEngagementRepository() EngagementRepository {
	return &EngagementRepositoryImpl{}
}

func (r *EngagementRepositoryImpl) Create(db *gorm.DB, engagement *models.Engagement) error {
	return db.Create(engagement).Error
}

// FindByID loads the engagement aggregate: milestones, review and parties.
func (r *EngagementRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Engagement, error) {
	var engagement models.Engagement
	err := db.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("percentage ASC")
	}).Preload("Review").Preload("Customer").Preload("Worker").
		First(&engagement, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEngagementNotFound
		}
		return nil, err
	}
	return &engagement, nil
}

func (r *EngagementRepositoryImpl) FindByCustomer(db *gorm.DB, customerID string, limit, offset int) ([]models.Engagement, int64, error) {
	return r.findByParty(db, "customer_id = ?", customerID, limit, offset)
}

func (r *EngagementRepositoryImpl) FindByWorker(db *gorm.DB, workerID string, limit, offset int) ([]models.Engagement, int64, error) {
	return r.findByParty(db, "worker_id = ?", workerID, limit, offset)
}

func (r *EngagementRepositoryImpl) findByParty(db *gorm.DB, cond, id string, limit, offset int) ([]models.Engagement, int64, error) {
	var engagements []models.Engagement

	var total int64
	if err := db.Model(&models.Engagement{}).Where(cond, id).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Milestones").Preload("Review").
		Where(cond, id).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&engagements).Error
	return engagements, total, err
}

func (r *EngagementRepositoryImpl) Update(db *gorm.DB, engagement *models.Engagement) error {
	return db.Save(engagement).Error
}

func (r *EngagementRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.EngagementStatus) error {
	result := db.Model(&models.Engagement{}).Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEngagementNotFound
	}
	return nil
}

func (r *EngagementRepositoryImpl) AssignWorker(db *gorm.DB, id, workerID string) error {
	result := db.Model(&models.Engagement{}).Where("id = ?", id).
		Update("worker_id", workerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEngagementNotFound
	}
	return nil
}

func (r *EngagementRepositoryImpl) SaveProposal(db *gorm.DB, id string, price float64, description string, sentAt time.Time) error {
	result := db.Model(&models.Engagement{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"proposal_price":       price,
			"proposal_description": description,
			"proposal_sent_at":     sentAt,
			"status":               models.EngagementStatusProposalSent,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEngagementNotFound
	}
	return nil
}

func (r *EngagementRepositoryImpl) UpdatePaymentStatus(db *gorm.DB, id string, status models.PaymentStatus) error {
	result := db.Model(&models.Engagement{}).Where("id = ?", id).
		Update("payment_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEngagementNotFound
	}
	return nil
}

func (r *EngagementRepositoryImpl) AddUpdate(db *gorm.DB, update *models.ProjectUpdate) error {
	return db.Create(update).Error
}

func (r *EngagementRepositoryImpl) FindUpdates(db *gorm.DB, engagementID string) ([]models.ProjectUpdate, error) {
	var updates []models.ProjectUpdate
	err := db.Where("engagement_id = ?", engagementID).
		Order("created_at ASC").
		Find(&updates).Error
	return updates, err
}
