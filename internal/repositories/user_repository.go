package repositories

import (
	"errors"

	"buildlink_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrProfileNotFound = errors.New("profile not found")
)

type UserRepository interface {
	CreateUser(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	UpdateUser(db *gorm.DB, user *models.User) error

	CreateWorkerProfile(db *gorm.DB, profile *models.WorkerProfile) error
	CreateCustomerProfile(db *gorm.DB, profile *models.CustomerProfile) error
	CreateCompanyProfile(db *gorm.DB, profile *models.CompanyProfile) error

	FindWorkerProfile(db *gorm.DB, userID string) (*models.WorkerProfile, error)
	FindCustomerProfile(db *gorm.DB, userID string) (*models.CustomerProfile, error)
	FindCompanyProfile(db *gorm.DB, userID string) (*models.CompanyProfile, error)

	FindWorkers(db *gorm.DB, specialization models.Specialization, limit, offset int) ([]models.WorkerProfile, int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) CreateUser(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrEmailTaken
	}
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) UpdateUser(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func (r *UserRepositoryImpl) CreateWorkerProfile(db *gorm.DB, profile *models.WorkerProfile) error {
	return db.Create(profile).Error
}

func (r *UserRepositoryImpl) CreateCustomerProfile(db *gorm.DB, profile *models.CustomerProfile) error {
	return db.Create(profile).Error
}

func (r *UserRepositoryImpl) CreateCompanyProfile(db *gorm.DB, profile *models.CompanyProfile) error {
	return db.Create(profile).Error
}

func (r *UserRepositoryImpl) FindWorkerProfile(db *gorm.DB, userID string) (*models.WorkerProfile, error) {
	var profile models.WorkerProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepositoryImpl) FindCustomerProfile(db *gorm.DB, userID string) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepositoryImpl) FindCompanyProfile(db *gorm.DB, userID string) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepositoryImpl) FindWorkers(db *gorm.DB, specialization models.Specialization, limit, offset int) ([]models.WorkerProfile, int64, error) {
	var profiles []models.WorkerProfile

	query := db.Model(&models.WorkerProfile{})
	if specialization != "" {
		query = query.Where("specialization = ?", specialization)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("rating DESC").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, total, err
}
