package models

import (
	"time"

	"gorm.io/datatypes"
)

type Upload struct {
	BaseModel
	UserID     string `gorm:"not null;index"`
	EntityType string // "milestone", "project_update", "chat_message", "profile"
	EntityID   string
	FileType   string // "image", "document"
	Path       string `gorm:"not null"`
	MimeType   string
	Size       int64
	IsPublic   bool `gorm:"default:true"`

	OriginalName    string         `gorm:"column:original_name"`
	URL             string         `gorm:"column:url"`
	ThumbnailPath   string         `gorm:"column:thumbnail_path"`
	Variants        datatypes.JSON `gorm:"column:variants"` // generated sizes
	Metadata        datatypes.JSON `gorm:"column:metadata"`
	StorageProvider string         `gorm:"column:storage_provider;default:'local'"` // 'local', 's3', 'cloudflare_r2'
	ExpiresAt       *time.Time     `gorm:"column:expires_at"`
}
