// file: internals/features/users/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	usermodel "shuttleku_backend/internals/features/users/model"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterUserDTO struct {
	UserName  string `json:"user_name" validate:"required,min=2,max=60"`
	UserEmail string `json:"user_email" validate:"required,email,max=120"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	UserRole  string `json:"user_role" validate:"omitempty,oneof=admin staff"`
}

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	UserRole      string    `json:"user_role"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserResponse `json:"user"`
}

func ToUserResponse(u usermodel.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		UserName:      u.UserName,
		UserEmail:     u.UserEmail,
		UserRole:      u.UserRole,
		UserCreatedAt: u.CreatedAt,
	}
}
