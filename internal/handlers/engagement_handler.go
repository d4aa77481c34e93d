package handlers

import (
	"net/http"

	"buildlink_backend/internal/middleware"
	"buildlink_backend/internal/models"
	"buildlink_backend/internal/services"
	"buildlink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	*BaseHandler
	engagementService services.EngagementService
}

func NewEngagementHandler(base *BaseHandler, engagementService services.EngagementService) *EngagementHandler {
	return &EngagementHandler{BaseHandler: base, engagementService: engagementService}
}

func (h *EngagementHandler) RegisterRoutes(r *gin.RouterGroup) {
	engagements := r.Group("/engagements")
	engagements.Use(middleware.AuthMiddleware())
	{
		engagements.GET("/:engagementId", h.GetEngagement)
		engagements.GET("/my", h.ListMine)
		engagements.GET("/:engagementId/updates", h.ListUpdates)
	}

	customer := r.Group("/engagements")
	customer.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleCustomer))
	{
		customer.POST("", h.CreateEngagement)
		customer.POST("/:engagementId/accept", h.AcceptProposal)
		customer.POST("/:engagementId/reject", h.RejectProposal)
		customer.POST("/:engagementId/pay", h.MarkPaid)
	}

	worker := r.Group("/engagements")
	worker.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleWorker))
	{
		worker.POST("/:engagementId/proposal", h.SendProposal)
		worker.POST("/:engagementId/updates", h.AddUpdate)
	}
}

func (h *EngagementHandler) CreateEngagement(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEngagementRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	engagement, err := h.engagementService.CreateEngagement(h.GetDB(c), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, engagement)
}

func (h *EngagementHandler) GetEngagement(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	engagement, err := h.engagementService.GetEngagement(h.GetDB(c), c.Param("engagementId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, engagement)
}

func (h *EngagementHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	var (
		list *dto.EngagementListResponse
		err  error
	)
	if c.GetString("role") == string(models.UserRoleWorker) {
		list, err = h.engagementService.ListForWorker(db, userID, page, pageSize)
	} else {
		list, err = h.engagementService.ListForCustomer(db, userID, page, pageSize)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EngagementHandler) SendProposal(c *gin.Context) {
	workerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendProposalRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	engagement, err := h.engagementService.SendProposal(h.GetDB(c), c.Param("engagementId"), workerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, engagement)
}

func (h *EngagementHandler) AcceptProposal(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	engagement, err := h.engagementService.AcceptProposal(h.GetDB(c), c.Param("engagementId"), customerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, engagement)
}

func (h *EngagementHandler) RejectProposal(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	engagement, err := h.engagementService.RejectProposal(h.GetDB(c), c.Param("engagementId"), customerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, engagement)
}

func (h *EngagementHandler) MarkPaid(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	engagement, err := h.engagementService.MarkPaid(h.GetDB(c), c.Param("engagementId"), customerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, engagement)
}

func (h *EngagementHandler) AddUpdate(c *gin.Context) {
	workerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddProjectUpdateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	update, err := h.engagementService.AddUpdate(h.GetDB(c), c.Param("engagementId"), workerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, update)
}

func (h *EngagementHandler) ListUpdates(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	updates, err := h.engagementService.ListUpdates(h.GetDB(c), c.Param("engagementId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updates": updates, "total": len(updates)})
}
