package handlers

import (
	"net/http"

	"buildlink_backend/internal/models"
	"buildlink_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{BaseHandler: base, profileService: profileService}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public discovery endpoints.
	r.GET("/workers", h.ListWorkers)
	r.GET("/workers/:userId", h.GetWorkerProfile)
}

func (h *ProfileHandler) ListWorkers(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	specialization := models.Specialization(c.Query("specialization"))

	workers, err := h.profileService.ListWorkers(h.GetDB(c), specialization, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workers)
}

func (h *ProfileHandler) GetWorkerProfile(c *gin.Context) {
	profile, err := h.profileService.GetWorkerProfile(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
