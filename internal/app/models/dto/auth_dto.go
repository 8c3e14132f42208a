package dto

import (
	"github.com/attendlink/attendlink/internal/app/models"
)

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	FullName string  `json:"full_name" binding:"required"`
	Role     string  `json:"role" binding:"required,oneof=student faculty admin"`
	Phone    *string `json:"phone,omitempty"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password reset flow.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// MeResponse is the current user with an optional role profile.
type MeResponse struct {
	User    *models.User    `json:"user"`
	Student *models.Student `json:"student,omitempty"`
	Faculty *models.Faculty `json:"faculty,omitempty"`
}
