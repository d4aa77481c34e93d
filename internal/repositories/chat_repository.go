package repositories

import (
	"errors"
	"strings"

	"buildlink_backend/internal/models/chat"

	"gorm.io/gorm"
)

var (
	ErrRoomNotFound = errors.New("chat room not found")
	// ErrRoomExists signals the unique index on room_id fired: another request
	// created the room first. Callers recover by re-fetching.
	ErrRoomExists = errors.New("chat room already exists")
)

type ChatRepository interface {
	CreateRoom(db *gorm.DB, room *chat.Room) error
	FindRoomByAssociation(db *gorm.DB, projectID, projectType string) (*chat.Room, error)
	FindRoomByRoomID(db *gorm.DB, roomID string) (*chat.Room, error)
	FindRoomsByUser(db *gorm.DB, userID string) ([]chat.Room, error)

	CreateMessage(db *gorm.DB, message *chat.Message) error
	FindMessagesByRoom(db *gorm.DB, roomID string, limit, offset int) ([]chat.Message, int64, error)
}

type ChatRepositoryImpl struct{}

func NewChatRepository() ChatRepository {
	return &ChatRepositoryImpl{}
}

func (r *ChatRepositoryImpl) CreateRoom(db *gorm.DB, room *chat.Room) error {
	err := db.Create(room).Error
	if err != nil && isDuplicateKeyError(err) {
		return ErrRoomExists
	}
	return err
}

func (r *ChatRepositoryImpl) FindRoomByAssociation(db *gorm.DB, projectID, projectType string) (*chat.Room, error) {
	var room chat.Room
	err := db.Where("project_id = ? AND project_type = ?", projectID, projectType).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *ChatRepositoryImpl) FindRoomByRoomID(db *gorm.DB, roomID string) (*chat.Room, error) {
	var room chat.Room
	err := db.Where("room_id = ?", roomID).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *ChatRepositoryImpl) FindRoomsByUser(db *gorm.DB, userID string) ([]chat.Room, error) {
	var rooms []chat.Room
	err := db.Where("customer_id = ? OR worker_id = ? OR company_id = ?", userID, userID, userID).
		Order("updated_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *ChatRepositoryImpl) CreateMessage(db *gorm.DB, message *chat.Message) error {
	return db.Create(message).Error
}

func (r *ChatRepositoryImpl) FindMessagesByRoom(db *gorm.DB, roomID string, limit, offset int) ([]chat.Message, int64, error) {
	var messages []chat.Message

	var total int64
	if err := db.Model(&chat.Message{}).Where("room_id = ?", roomID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Where("room_id = ?", roomID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	return messages, total, err
}

// isDuplicateKeyError matches a unique-constraint violation both through the
// gorm translated error and the raw postgres message (SQLSTATE 23505).
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "duplicate key")
}
