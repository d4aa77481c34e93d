package handlers

import (
	"net/http"

	"buildlink_backend/internal/middleware"
	"buildlink_backend/internal/models"
	"buildlink_backend/internal/services"
	"buildlink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type HiringHandler struct {
	*BaseHandler
	hiringService services.HiringService
}

func NewHiringHandler(base *BaseHandler, hiringService services.HiringService) *HiringHandler {
	return &HiringHandler{BaseHandler: base, hiringService: hiringService}
}

func (h *HiringHandler) RegisterRoutes(r *gin.RouterGroup) {
	company := r.Group("/hiring")
	company.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleCompany))
	{
		company.POST("/offers", h.CreateOffer)
		company.GET("/offers/sent", h.ListSent)
	}

	worker := r.Group("/hiring")
	worker.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleWorker))
	{
		worker.GET("/offers", h.ListReceived)
		worker.POST("/offers/:offerId/accept", h.AcceptOffer)
		worker.POST("/offers/:offerId/reject", h.RejectOffer)
	}
}

func (h *HiringHandler) CreateOffer(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateHiringOfferRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	offer, err := h.hiringService.CreateOffer(h.GetDB(c), companyID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *HiringHandler) ListSent(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	offers, err := h.hiringService.ListForCompany(h.GetDB(c), companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers, "total": len(offers)})
}

func (h *HiringHandler) ListReceived(c *gin.Context) {
	workerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	offers, err := h.hiringService.ListForWorker(h.GetDB(c), workerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers, "total": len(offers)})
}

func (h *HiringHandler) AcceptOffer(c *gin.Context) {
	workerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	offer, err := h.hiringService.AcceptOffer(h.GetDB(c), c.Param("offerId"), workerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *HiringHandler) RejectOffer(c *gin.Context) {
	workerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	offer, err := h.hiringService.RejectOffer(h.GetDB(c), c.Param("offerId"), workerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}
