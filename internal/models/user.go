package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	Name         string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(20);default:'pending'"`
	IsVerified   bool       `gorm:"default:false"`
	ResetToken   string
	ResetTokenExp *time.Time

	// Relations
	WorkerProfile   *WorkerProfile   `gorm:"foreignKey:UserID"`
	CustomerProfile *CustomerProfile `gorm:"foreignKey:UserID"`
	CompanyProfile  *CompanyProfile  `gorm:"foreignKey:UserID"`
	RefreshTokens   []RefreshToken   `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

type WorkerProfile struct {
	BaseModel
	UserID         string         `gorm:"not null;uniqueIndex"`
	Specialization Specialization `gorm:"type:varchar(30);not null"`
	Bio            string
	City           string
	Skills         pq.StringArray `gorm:"type:text[]"`
	HourlyRate     *float64
	Rating         float64 `gorm:"default:0"`
	ReviewsCount   int     `gorm:"default:0"`
	IsAvailable    bool    `gorm:"default:true"`
}

type CustomerProfile struct {
	BaseModel
	UserID       string `gorm:"not null;uniqueIndex"`
	City         string
	Rating       float64 `gorm:"default:0"`
	ReviewsCount int     `gorm:"default:0"`
}

type CompanyProfile struct {
	BaseModel
	UserID      string `gorm:"not null;uniqueIndex"`
	CompanyName string `gorm:"not null"`
	City        string
	Description string
	IsVerified  bool `gorm:"default:false"`
}

// ProfileReview is the denormalized copy of an engagement review that lives on
// the receiving party's public profile. The aggregate Rating on the profile is
// recomputed from these rows.
type ProfileReview struct {
	BaseModel
	SubjectID    string `gorm:"not null;index"`
	AuthorID     string `gorm:"not null;index"`
	EngagementID string `gorm:"not null;index"`
	Rating       int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment      string
}
