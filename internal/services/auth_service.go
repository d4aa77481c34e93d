package services

import (
	"errors"

	"buildlink_backend/internal/auth"
	"buildlink_backend/internal/models"
	"buildlink_backend/internal/repositories"
	"buildlink_backend/internal/services/dto"
	"buildlink_backend/pkg/apperrors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	switch req.Role {
	case models.UserRoleWorker:
		if req.Specialization == "" {
			return nil, apperrors.ErrInvalidInput("auth", "Workers must provide a specialization")
		}
	case models.UserRoleCompany:
		if req.CompanyName == "" {
			return nil, apperrors.ErrInvalidInput("auth", "Companies must provide a company name")
		}
	case models.UserRoleCustomer:
	default:
		return nil, apperrors.ErrInvalidInput("auth", "Unknown role")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.CreateUser(db, user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.createProfile(db, user, req); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *authService) createProfile(db *gorm.DB, user *models.User, req *dto.RegisterRequest) error {
	switch user.Role {
	case models.UserRoleWorker:
		profile := &models.WorkerProfile{
			UserID:         user.ID,
			Specialization: req.Specialization,
			Skills:         pq.StringArray(req.Skills),
			City:           req.City,
		}
		if err := s.userRepo.CreateWorkerProfile(db, profile); err != nil {
			return apperrors.InternalError(err)
		}
	case models.UserRoleCustomer:
		profile := &models.CustomerProfile{
			UserID: user.ID,
			City:   req.City,
		}
		if err := s.userRepo.CreateCustomerProfile(db, profile); err != nil {
			return apperrors.InternalError(err)
		}
	case models.UserRoleCompany:
		profile := &models.CompanyProfile{
			UserID:      user.ID,
			CompanyName: req.CompanyName,
			City:        req.City,
		}
		if err := s.userRepo.CreateCompanyProfile(db, profile); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusBanned || user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrNotAuthorized("auth", "Account is not active")
	}

	return s.issueToken(user)
}

func (s *authService) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		User:        userToResponse(user),
	}, nil
}

func (s *authService) GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return userToResponse(user), nil
}

func userToResponse(u *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		Status: string(u.Status),
	}
}
