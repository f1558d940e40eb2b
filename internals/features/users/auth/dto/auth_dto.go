package dto

import (
	"time"

	"github.com/google/uuid"

	authModel "schoolku_backend/internals/features/users/auth/model"
)

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3,max=255"` // email atau user_name
	Password   string `json:"password" validate:"required,min=6,max=72"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"user_name"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

func FromUser(u *authModel.UserModel) UserResponse {
	return UserResponse{ID: u.ID, UserName: u.UserName, FullName: u.FullName, Email: u.Email, Role: u.Role}
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}
