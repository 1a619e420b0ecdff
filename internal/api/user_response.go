package api

import (
	"time"

	"proshop/internal/model"

	"github.com/google/uuid"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID        uuid.UUID `json:"id" example:"5f0d2c4e-8a8e-4a55-9b55-1b2f3c4d5e6f"`
	Name      string    `json:"name" example:"Alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	IsAdmin   bool      `json:"is_admin" example:"false"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

// AuthResponse 登入或註冊成功後回傳使用者與存取令牌
// swagger:model api.AuthResponse
type AuthResponse struct {
	UserResponse
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresAt time.Time `json:"expires_at" example:"2025-06-01T15:04:05Z"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
