package dto

import (
	"time"

	"novelhub/internal/microservices/http-api/models"
)

// Data Transfer Objects for authentication requests and responses

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Username             string `json:"username" binding:"required,min=3,max=50"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse: response payload after successful login or registration
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"` // seconds
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ChangeRoleRequest: payload for POST /api/users/role
type ChangeRoleRequest struct {
	UserID int64  `json:"userId" binding:"required,gt=0"`
	Role   string `json:"role" binding:"required,user_role"`
}

// DeleteUserRequest: payload for POST /api/delete-users
type DeleteUserRequest struct {
	UserID int64 `json:"userId" binding:"required,gt=0"`
}

func UserFromModel(u models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		LastSignInAt: u.LastSignInAt,
		CreatedAt:    u.CreatedAt,
	}
}

func UsersFromModels(list []models.User) []UserResponse {
	resp := make([]UserResponse, 0, len(list))
	for _, u := range list {
		resp = append(resp, UserFromModel(u))
	}
	return resp
}
