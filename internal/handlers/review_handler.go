package handlers

import (
	"net/http"

	"buildlink_backend/internal/middleware"
	"buildlink_backend/internal/services"
	"buildlink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Profile reviews are public: anyone may read a worker's track record.
	r.GET("/profiles/:userId/reviews", h.ListProfileReviews)

	reviews := r.Group("/engagements/:engagementId/review")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.POST("", h.SubmitReview)
		reviews.GET("", h.GetReview)
	}
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.SubmitReview(h.GetDB(c), c.Param("engagementId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(h.GetDB(c), c.Param("engagementId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) ListProfileReviews(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	reviews, err := h.reviewService.ListProfileReviews(h.GetDB(c), c.Param("userId"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
