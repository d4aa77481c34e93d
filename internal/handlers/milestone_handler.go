package handlers

import (
	"net/http"

	"buildlink_backend/internal/middleware"
	"buildlink_backend/internal/models"
	"buildlink_backend/internal/services"
	"buildlink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	*BaseHandler
	milestoneService services.MilestoneService
}

func NewMilestoneHandler(base *BaseHandler, milestoneService services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{BaseHandler: base, milestoneService: milestoneService}
}

func (h *MilestoneHandler) RegisterRoutes(r *gin.RouterGroup) {
	shared := r.Group("/engagements/:engagementId")
	shared.Use(middleware.AuthMiddleware())
	{
		shared.GET("/milestones", h.ListMilestones)
		shared.GET("/completion", h.GetCompletion)
	}

	worker := r.Group("/engagements/:engagementId")
	worker.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleWorker))
	{
		worker.POST("/milestones", h.SubmitMilestone)
	}

	customer := r.Group("/milestones/:milestoneId")
	customer.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleCustomer))
	{
		customer.POST("/approve", h.ApproveMilestone)
		customer.POST("/reject", h.RejectMilestone)
		customer.POST("/request-revision", h.RequestRevision)
		customer.POST("/report", h.ReportToAdmin)
	}
}

func (h *MilestoneHandler) SubmitMilestone(c *gin.Context) {
	workerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitMilestoneRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	milestone, err := h.milestoneService.SubmitMilestone(h.GetDB(c), c.Param("engagementId"), workerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, milestone)
}

func (h *MilestoneHandler) ApproveMilestone(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	milestone, err := h.milestoneService.ApproveMilestone(h.GetDB(c), c.Param("milestoneId"), customerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestone)
}

func (h *MilestoneHandler) RejectMilestone(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RejectMilestoneRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	milestone, err := h.milestoneService.RejectMilestone(h.GetDB(c), c.Param("milestoneId"), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestone)
}

func (h *MilestoneHandler) RequestRevision(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RequestRevisionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	milestone, err := h.milestoneService.RequestRevision(h.GetDB(c), c.Param("milestoneId"), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestone)
}

func (h *MilestoneHandler) ReportToAdmin(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReportMilestoneRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	milestone, err := h.milestoneService.ReportToAdmin(h.GetDB(c), c.Param("milestoneId"), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestone)
}

func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	milestones, err := h.milestoneService.ListMilestones(h.GetDB(c), c.Param("engagementId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestones": milestones, "total": len(milestones)})
}

func (h *MilestoneHandler) GetCompletion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	completion, err := h.milestoneService.GetCompletion(h.GetDB(c), c.Param("engagementId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, completion)
}
