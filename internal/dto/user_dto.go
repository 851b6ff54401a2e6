package dto

import "github.com/google/uuid"

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=user admin"`
}

// UpdateUserRequest replaces the stored fields; the password is rehashed
// only when supplied non-empty.
type UpdateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type CreateUserResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}
