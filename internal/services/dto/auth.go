package dto

import "buildlink_backend/internal/models"

type RegisterRequest struct {
	Email    string          `json:"email" binding:"required" validate:"required,email"`
	Password string          `json:"password" binding:"required" validate:"required,min=8"`
	Name     string          `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Role     models.UserRole `json:"role" binding:"required" validate:"required,oneof=customer worker company"`

	// Worker-only fields
	Specialization models.Specialization `json:"specialization,omitempty" validate:"omitempty,oneof=architect interior_designer"`
	Skills         []string              `json:"skills,omitempty"`

	// Company-only fields
	CompanyName string `json:"company_name,omitempty" validate:"omitempty,min=2,max=200"`

	City string `json:"city,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

type UserResponse struct {
	ID     string          `json:"id"`
	Email  string          `json:"email"`
	Name   string          `json:"name"`
	Role   models.UserRole `json:"role"`
	Status string          `json:"status"`
}
