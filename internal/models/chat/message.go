package chat

import "time"

// Message is one durable entry in a room's append-only log. Delivery to live
// connections happens after the append and is best-effort.
type Message struct {
	ID         string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RoomID     string `gorm:"not null;index"`
	SenderID   string `gorm:"not null;index"`
	SenderKind string `gorm:"type:varchar(20);not null"`
	Content    string `gorm:"not null"`
	CreatedAt  time.Time
}

func (Message) TableName() string {
	return "chat.messages"
}
