package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"buildlink_backend/internal/config"
	"buildlink_backend/internal/imageprocessor"
	"buildlink_backend/internal/logger"
	"buildlink_backend/internal/models"
	"buildlink_backend/internal/repositories"
	"buildlink_backend/internal/services/dto"
	"buildlink_backend/internal/storage"
	"buildlink_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UploadService stores uploaded images in the configured blob backend and
// records them. Image uploads get a thumbnail variant generated alongside the
// original.
type UploadService interface {
	UploadImage(ctx context.Context, db *gorm.DB, userID string, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error)
	GetUpload(ctx context.Context, db *gorm.DB, id string) (*dto.UploadResponse, error)
	ServeFile(ctx context.Context, db *gorm.DB, id string) (io.ReadCloser, string, error)
	DeleteUpload(ctx context.Context, db *gorm.DB, id, userID string) error
}

type uploadService struct {
	uploadRepo repositories.UploadRepository
	store      storage.Storage
	processor  *imageprocessor.Processor
	cfg        *config.Config
}

func NewUploadService(
	uploadRepo repositories.UploadRepository,
	store storage.Storage,
	processor *imageprocessor.Processor,
	cfg *config.Config,
) UploadService {
	return &uploadService{
		uploadRepo: uploadRepo,
		store:      store,
		processor:  processor,
		cfg:        cfg,
	}
}

func (s *uploadService) UploadImage(ctx context.Context, db *gorm.DB, userID string, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error) {
	if fileHeader.Size > s.cfg.Upload.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !s.allowedType(mimeType) {
		return nil, apperrors.ErrInvalidFileType
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer file.Close()

	// Buffer once so the original and the thumbnail pass read independently.
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := fmt.Sprintf("images/%s/%s%s", time.Now().Format("2006/01"), uuid.NewString(), ext)

	if err := s.store.Save(ctx, key, bytes.NewReader(data), mimeType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	thumbKey, variants := s.generateThumbnail(ctx, key, ext, mimeType, data)

	url, err := s.store.URL(ctx, key)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	upload := &models.Upload{
		UserID:          userID,
		FileType:        "image",
		Path:            key,
		MimeType:        mimeType,
		Size:            fileHeader.Size,
		OriginalName:    fileHeader.Filename,
		URL:             url,
		ThumbnailPath:   thumbKey,
		Variants:        variants,
		StorageProvider: s.providerName(),
	}
	if err := s.uploadRepo.Create(db, upload); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.toResponse(ctx, upload), nil
}

// generateThumbnail is best-effort: a failure leaves the upload without a
// thumbnail but never fails the upload itself.
func (s *uploadService) generateThumbnail(ctx context.Context, key, ext, mimeType string, data []byte) (string, datatypes.JSON) {
	resized, _, err := s.processor.Resize(bytes.NewReader(data), imageprocessor.VariantThumbnail)
	if err != nil {
		logger.WithError(err).Warn("thumbnail generation failed", "path", key)
		return "", nil
	}

	thumbKey := strings.TrimSuffix(key, ext) + "_thumb" + ext
	if err := s.store.Save(ctx, thumbKey, resized, mimeType); err != nil {
		logger.WithError(err).Warn("thumbnail save failed", "path", thumbKey)
		return "", nil
	}

	variants, _ := json.Marshal(map[string]string{
		imageprocessor.VariantThumbnail.Name: thumbKey,
	})
	return thumbKey, variants
}

func (s *uploadService) GetUpload(ctx context.Context, db *gorm.DB, id string) (*dto.UploadResponse, error) {
	upload, err := s.uploadRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(ctx, upload), nil
}

func (s *uploadService) ServeFile(ctx context.Context, db *gorm.DB, id string) (io.ReadCloser, string, error) {
	upload, err := s.uploadRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			return nil, "", apperrors.ErrNotFound(err)
		}
		return nil, "", apperrors.InternalError(err)
	}

	reader, err := s.store.Get(ctx, upload.Path)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	return reader, upload.MimeType, nil
}

func (s *uploadService) DeleteUpload(ctx context.Context, db *gorm.DB, id, userID string) error {
	upload, err := s.uploadRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if upload.UserID != userID {
		return apperrors.ErrNotAuthorized("upload", "Only the uploader can delete a file")
	}

	if err := s.uploadRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}

	// Blob removal after the row: an orphaned blob is harmless, a dangling
	// row is not.
	if err := s.store.Delete(ctx, upload.Path); err != nil {
		logger.WithError(err).Warn("blob delete failed", "path", upload.Path)
	}
	if upload.ThumbnailPath != "" {
		if err := s.store.Delete(ctx, upload.ThumbnailPath); err != nil {
			logger.WithError(err).Warn("thumbnail delete failed", "path", upload.ThumbnailPath)
		}
	}
	return nil
}

func (s *uploadService) allowedType(mimeType string) bool {
	for _, t := range s.cfg.Upload.AllowedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

func (s *uploadService) providerName() string {
	if s.cfg.Storage.Type == "" {
		return "local"
	}
	return s.cfg.Storage.Type
}

func (s *uploadService) toResponse(ctx context.Context, upload *models.Upload) *dto.UploadResponse {
	resp := &dto.UploadResponse{
		ID:           upload.ID,
		URL:          upload.URL,
		OriginalName: upload.OriginalName,
		MimeType:     upload.MimeType,
		Size:         upload.Size,
		CreatedAt:    upload.CreatedAt,
	}
	if upload.ThumbnailPath != "" {
		if thumbURL, err := s.store.URL(ctx, upload.ThumbnailPath); err == nil {
			resp.ThumbnailURL = thumbURL
		}
	}
	return resp
}
