package handlers

import (
	"net/http"

	"buildlink_backend/internal/logger"
	"buildlink_backend/internal/middleware"
	"buildlink_backend/internal/models"
	"buildlink_backend/internal/services"
	"buildlink_backend/internal/services/dto"
	"buildlink_backend/ws"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
	wsManager   *ws.Manager
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService, wsManager *ws.Manager) *ChatHandler {
	return &ChatHandler{BaseHandler: base, chatService: chatService, wsManager: wsManager}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.POST("/resolve", h.ResolveRoom)
		chat.GET("/rooms", h.ListRooms)
		chat.GET("/rooms/:roomId/messages", h.ListMessages)
		chat.POST("/rooms/:roomId/messages", h.PostMessage)
	}
}

// ResolveRoom answers 200 with the room, or 204 when the association is not
// chat-worthy yet.
func (h *ChatHandler) ResolveRoom(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ResolveRoomRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	room, err := h.chatService.ResolveRoom(h.GetDB(c), req.AssociationID, req.Kind, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if room == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *ChatHandler) ListRooms(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	rooms, err := h.chatService.ListRooms(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "total": len(rooms)})
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	messages, err := h.chatService.ListMessages(h.GetDB(c), c.Param("roomId"), userID, pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) PostMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PostMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	roomID := c.Param("roomId")
	senderKind := senderKindForRole(c.GetString("role"))

	message, err := h.chatService.PostMessage(db, roomID, userID, senderKind, req.Content)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Durable append happened; live delivery is best-effort.
	if h.wsManager != nil {
		participants, err := h.chatService.RoomParticipants(db, roomID)
		if err != nil {
			logger.CtxWithError(c.Request.Context(), "ws fan-out skipped", err, "room_id", roomID)
		} else {
			h.wsManager.BroadcastToUsers(participants, message)
		}
	}

	c.JSON(http.StatusCreated, message)
}

func senderKindForRole(role string) models.SenderKind {
	switch models.UserRole(role) {
	case models.UserRoleCustomer:
		return models.SenderKindCustomer
	case models.UserRoleWorker:
		return models.SenderKindWorker
	case models.UserRoleCompany:
		return models.SenderKindCompany
	}
	return models.SenderKind(role)
}
