package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=5"`
	Password  string `json:"password" validate:"required,min=8"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,oneof=user admin"`
	SecretKey string `json:"secretKey"`
}

type LoginRequest struct {
	Username  string `json:"username" validate:"required,min=5"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role"`
	SecretKey string `json:"secretKey"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type LoginResponse struct {
	Message  string    `json:"message"`
	Token    string    `json:"token"`
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
}

type CheckUsernameResponse struct {
	Exists bool `json:"exists"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a human-readable message; Error holds the
// underlying diagnostic for 500s.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
