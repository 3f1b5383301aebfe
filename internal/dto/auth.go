package dto

import (
	"time"

	"FOODREC_BACK-END/internal/models"
)

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName *string `json:"full_name,omitempty"`
}

// LoginRequest represents the request payload for user login. The username
// field accepts either a username or an email address.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse is returned after successful registration
type RegisterResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse is returned after successful authentication
type LoginResponse struct {
	Status      string       `json:"status"`
	Message     string       `json:"message"`
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MessageResponse is a generic status/message body (logout)
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UserResponse is the public view of a user record. The password hash is
// never part of it.
type UserResponse struct {
	UserID    int64   `json:"user_id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name"`
	CreatedAt string  `json:"created_at"`
}

// NewUserResponse converts a user record to its public view.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
