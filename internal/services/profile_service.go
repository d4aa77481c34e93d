package services

import (
	"errors"

	"buildlink_backend/internal/models"
	"buildlink_backend/internal/repositories"
	"buildlink_backend/internal/services/dto"
	"buildlink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ProfileService exposes public worker discovery and profile lookups.
type ProfileService interface {
	ListWorkers(db *gorm.DB, specialization models.Specialization, page, pageSize int) (*dto.WorkerListResponse, error)
	GetWorkerProfile(db *gorm.DB, userID string) (*dto.WorkerProfileResponse, error)
}

type profileService struct {
	userRepo repositories.UserRepository
}

func NewProfileService(userRepo repositories.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) ListWorkers(db *gorm.DB, specialization models.Specialization, page, pageSize int) (*dto.WorkerListResponse, error) {
	if specialization != "" &&
		specialization != models.SpecializationArchitect &&
		specialization != models.SpecializationInteriorDesigner {
		return nil, apperrors.ErrInvalidInput("profile", "Unknown specialization")
	}

	offset := (page - 1) * pageSize
	profiles, total, err := s.userRepo.FindWorkers(db, specialization, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.WorkerProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, workerProfileToResponse(&profiles[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &dto.WorkerListResponse{
		Workers:    responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *profileService) GetWorkerProfile(db *gorm.DB, userID string) (*dto.WorkerProfileResponse, error) {
	profile, err := s.userRepo.FindWorkerProfile(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return workerProfileToResponse(profile), nil
}

func workerProfileToResponse(p *models.WorkerProfile) *dto.WorkerProfileResponse {
	return &dto.WorkerProfileResponse{
		UserID:         p.UserID,
		Specialization: p.Specialization,
		Bio:            p.Bio,
		City:           p.City,
		Skills:         []string(p.Skills),
		HourlyRate:     p.HourlyRate,
		Rating:         p.Rating,
		ReviewsCount:   p.ReviewsCount,
		IsAvailable:    p.IsAvailable,
	}
}
