package repositories

import (
	"errors"

	"buildlink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrHiringOfferNotFound = errors.New("hiring offer not found")
	ErrHiringOfferDecided  = errors.New("hiring offer has already been decided")
)

type HiringRepository interface {
	Create(db *gorm.DB, offer *models.HiringOffer) error
	FindByID(db *gorm.DB, id string) (*models.HiringOffer, error)
	FindByWorker(db *gorm.DB, workerID string) ([]models.HiringOffer, error)
	FindByCompany(db *gorm.DB, companyID string) ([]models.HiringOffer, error)

	// DecideIfPending sets the status with a pending-state guard so two racing
	// decisions cannot both apply.
	DecideIfPending(db *gorm.DB, id string, status models.HiringStatus) error
}

type HiringRepositoryImpl struct{}

func NewHiringRepository() HiringRepository {
	return &HiringRepositoryImpl{}
}

func (r *HiringRepositoryImpl) Create(db *gorm.DB, offer *models.HiringOffer) error {
	return db.Create(offer).Error
}

func (r *HiringRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.HiringOffer, error) {
	var offer models.HiringOffer
	err := db.Preload("Company").Preload("Worker").First(&offer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHiringOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

func (r *HiringRepositoryImpl) FindByWorker(db *gorm.DB, workerID string) ([]models.HiringOffer, error) {
	var offers []models.HiringOffer
	err := db.Preload("Company").
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

func (r *HiringRepositoryImpl) FindByCompany(db *gorm.DB, companyID string) ([]models.HiringOffer, error) {
	var offers []models.HiringOffer
	err := db.Preload("Worker").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

func (r *HiringRepositoryImpl) DecideIfPending(db *gorm.DB, id string, status models.HiringStatus) error {
	result := db.Model(&models.HiringOffer{}).
		Where("id = ? AND status = ?", id, models.HiringStatusPending).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHiringOfferDecided
	}
	return nil
}
