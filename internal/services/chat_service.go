package services

import (
	"errors"
	"strings"

	"buildlink_backend/internal/logger"
	"buildlink_backend/internal/models"
	"buildlink_backend/internal/models/chat"
	"buildlink_backend/internal/repositories"
	"buildlink_backend/internal/services/dto"
	"buildlink_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ChatService resolves associations (engagements, hiring offers) to their
// single chat room and appends messages. Room ids are a pure function of the
// association, so resolution is idempotent: the first caller creates the room
// lazily, later callers find it. A concurrent create losing the unique-index
// race falls back to re-fetching the winner's row and is never surfaced.
type ChatService interface {
	// ResolveRoom returns the room for the association, creating it on first
	// use. It returns (nil, nil) when the association is not chat-worthy: it
	// does not exist, has no assigned worker, or is not in an accepted state.
	ResolveRoom(db *gorm.DB, associationID, kind, userID string) (*dto.RoomResponse, error)

	PostMessage(db *gorm.DB, roomID, senderID string, senderKind models.SenderKind, content string) (*dto.MessageResponse, error)
	ListMessages(db *gorm.DB, roomID, userID string, limit, offset int) (*dto.MessageListResponse, error)
	ListRooms(db *gorm.DB, userID string) ([]*dto.RoomResponse, error)

	// RoomParticipants lists the user ids attached to a room, for fan-out.
	RoomParticipants(db *gorm.DB, roomID string) ([]string, error)
}

type chatService struct {
	chatRepo       repositories.ChatRepository
	engagementRepo repositories.EngagementRepository
	hiringRepo     repositories.HiringRepository
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	engagementRepo repositories.EngagementRepository,
	hiringRepo repositories.HiringRepository,
) ChatService {
	return &chatService{
		chatRepo:       chatRepo,
		engagementRepo: engagementRepo,
		hiringRepo:     hiringRepo,
	}
}

func (s *chatService) ResolveRoom(db *gorm.DB, associationID, kind, userID string) (*dto.RoomResponse, error) {
	if !models.ValidProjectType(kind) {
		return nil, apperrors.ErrInvalidInput("chat", "Unknown association kind")
	}

	room, err := s.buildRoom(db, associationID, kind, userID)
	if err != nil || room == nil {
		return nil, err
	}

	existing, err := s.chatRepo.FindRoomByAssociation(db, associationID, kind)
	if err == nil {
		return roomToResponse(existing), nil
	}
	if !errors.Is(err, repositories.ErrRoomNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if err := s.chatRepo.CreateRoom(db, room); err != nil {
		if !errors.Is(err, repositories.ErrRoomExists) {
			return nil, apperrors.InternalError(err)
		}
		// Lost the create race: another request inserted the room between our
		// lookup and the insert. The winner's row is the room.
		logger.Debug("chat room create race recovered", "room_id", room.RoomID)
		existing, err = s.chatRepo.FindRoomByAssociation(db, associationID, kind)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return roomToResponse(existing), nil
	}
	return roomToResponse(room), nil
}

// buildRoom loads the association, checks the caller is one of its parties and
// assembles the room row. A nil room with nil error means the association is
// not chat-worthy.
func (s *chatService) buildRoom(db *gorm.DB, associationID, kind, userID string) (*chat.Room, error) {
	roomID := chat.RoomIDFor(associationID, kind)

	if kind == models.ProjectTypeHiring {
		offer, err := s.hiringRepo.FindByID(db, associationID)
		if err != nil {
			if errors.Is(err, repositories.ErrHiringOfferNotFound) {
				return nil, nil
			}
			return nil, apperrors.InternalError(err)
		}
		if !offer.ChatWorthy() {
			return nil, nil
		}
		if offer.CompanyID != userID && offer.WorkerID != userID {
			return nil, apperrors.ErrNotAuthorized("chat", "Not a party of this hiring offer")
		}
		companyID := offer.CompanyID
		return &chat.Room{
			RoomID:      roomID,
			ProjectID:   associationID,
			ProjectType: kind,
			CompanyID:   &companyID,
			WorkerID:    offer.WorkerID,
		}, nil
	}

	engagement, err := s.engagementRepo.FindByID(db, associationID)
	if err != nil {
		if errors.Is(err, repositories.ErrEngagementNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	if string(engagement.Kind) != kind {
		return nil, apperrors.ErrInvalidInput("chat", "Association kind does not match the engagement")
	}
	if !engagement.ChatWorthy() {
		return nil, nil
	}
	if !engagement.IsCustomer(userID) && !engagement.IsWorker(userID) {
		return nil, apperrors.ErrNotAuthorized("chat", "Not a party of this engagement")
	}
	customerID := engagement.CustomerID
	return &chat.Room{
		RoomID:      roomID,
		ProjectID:   associationID,
		ProjectType: kind,
		CustomerID:  &customerID,
		WorkerID:    *engagement.WorkerID,
	}, nil
}

func (s *chatService) PostMessage(db *gorm.DB, roomID, senderID string, senderKind models.SenderKind, content string) (*dto.MessageResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.ErrInvalidInput("chat", "Message content must not be empty")
	}
	if !models.ValidSenderKind(senderKind) {
		return nil, apperrors.ErrInvalidInput("chat", "Unknown sender kind")
	}

	room, err := s.chatRepo.FindRoomByRoomID(db, roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoomNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !roomHasParticipant(room, senderID) {
		return nil, apperrors.ErrNotAuthorized("chat", "Not a participant of this room")
	}

	message := &chat.Message{
		RoomID:     roomID,
		SenderID:   senderID,
		SenderKind: string(senderKind),
		Content:    content,
	}
	if err := s.chatRepo.CreateMessage(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return messageToResponse(message), nil
}

func (s *chatService) ListMessages(db *gorm.DB, roomID, userID string, limit, offset int) (*dto.MessageListResponse, error) {
	room, err := s.chatRepo.FindRoomByRoomID(db, roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoomNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !roomHasParticipant(room, userID) {
		return nil, apperrors.ErrNotAuthorized("chat", "Not a participant of this room")
	}

	messages, total, err := s.chatRepo.FindMessagesByRoom(db, roomID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, messageToResponse(&messages[i]))
	}
	return &dto.MessageListResponse{Messages: responses, Total: total}, nil
}

func (s *chatService) ListRooms(db *gorm.DB, userID string) ([]*dto.RoomResponse, error) {
	rooms, err := s.chatRepo.FindRoomsByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	responses := make([]*dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		responses = append(responses, roomToResponse(&rooms[i]))
	}
	return responses, nil
}

func (s *chatService) RoomParticipants(db *gorm.DB, roomID string) ([]string, error) {
	room, err := s.chatRepo.FindRoomByRoomID(db, roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoomNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	participants := []string{room.WorkerID}
	if room.CustomerID != nil {
		participants = append(participants, *room.CustomerID)
	}
	if room.CompanyID != nil {
		participants = append(participants, *room.CompanyID)
	}
	return participants, nil
}

func roomHasParticipant(room *chat.Room, userID string) bool {
	if room.WorkerID == userID {
		return true
	}
	if room.CustomerID != nil && *room.CustomerID == userID {
		return true
	}
	if room.CompanyID != nil && *room.CompanyID == userID {
		return true
	}
	return false
}

func roomToResponse(r *chat.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		RoomID:      r.RoomID,
		ProjectID:   r.ProjectID,
		ProjectType: r.ProjectType,
		CustomerID:  r.CustomerID,
		WorkerID:    r.WorkerID,
		CompanyID:   r.CompanyID,
		CreatedAt:   r.CreatedAt,
	}
}

func messageToResponse(m *chat.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:         m.ID,
		RoomID:     m.RoomID,
		SenderID:   m.SenderID,
		SenderKind: models.SenderKind(m.SenderKind),
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}
