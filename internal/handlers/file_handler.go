package handlers

import (
	"io"
	"net/http"

	"buildlink_backend/internal/middleware"
	"buildlink_backend/internal/services"
	"buildlink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewFileHandler(base *BaseHandler, uploadService services.UploadService) *FileHandler {
	return &FileHandler{BaseHandler: base, uploadService: uploadService}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Serving is public: upload URLs are shared in milestone and chat payloads.
	r.GET("/files/:uploadId", h.ServeFile)

	uploads := r.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	{
		uploads.POST("/images", h.UploadImage)
		uploads.GET("/:uploadId", h.GetUpload)
		uploads.DELETE("/:uploadId", h.DeleteUpload)
	}
}

func (h *FileHandler) UploadImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("A 'file' form field is required"))
		return
	}

	upload, err := h.uploadService.UploadImage(c.Request.Context(), h.GetDB(c), userID, fileHeader)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, upload)
}

func (h *FileHandler) GetUpload(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	upload, err := h.uploadService.GetUpload(c.Request.Context(), h.GetDB(c), c.Param("uploadId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	reader, mimeType, err := h.uploadService.ServeFile(c.Request.Context(), h.GetDB(c), c.Param("uploadId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", mimeType)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}

func (h *FileHandler) DeleteUpload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.uploadService.DeleteUpload(c.Request.Context(), h.GetDB(c), c.Param("uploadId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Upload deleted"})
}
