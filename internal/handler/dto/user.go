package dto

import (
	"time"

	"github.com/shopcart/shopcart/internal/model"
)

// CreateUserRequest represents the request body for registering a user.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=25,usernamechars"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=30,passwordchars"`
}

// UpdateUserRequest represents a partial user update.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=2,max=25,usernamechars"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=30,passwordchars"`
}

// UserResponse represents a user in API responses. The password hash
// never leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserListResponse converts a slice of User models.
func ToUserListResponse(users []*model.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, ToUserResponse(user))
	}
	return out
}
