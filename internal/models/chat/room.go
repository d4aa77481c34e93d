package chat

import "time"

// Room is the durable chat channel bound to exactly one association: an
// engagement (architect or interior kind) or a hiring offer. RoomID is a pure
// function of the association, so repeated resolution is idempotent; the
// unique index is what wins a concurrent create race.
type Room struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RoomID      string `gorm:"not null;uniqueIndex"`
	ProjectID   string `gorm:"not null;uniqueIndex:idx_chat_rooms_project"`
	ProjectType string `gorm:"not null;uniqueIndex:idx_chat_rooms_project"`

	CustomerID *string `gorm:"index"`
	WorkerID   string  `gorm:"not null;index"`
	CompanyID  *string `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Messages []Message `gorm:"foreignKey:RoomID;references:RoomID"`
}

func (Room) TableName() string {
	return "chat.rooms"
}

// RoomIDFor derives the deterministic room identifier for an association.
func RoomIDFor(associationID, kind string) string {
	return kind + "-" + associationID
}
