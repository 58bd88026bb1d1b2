package auth

import (
	"time"

	"github.com/angelmondragon/sweetshop-backend/internal/users"
)

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest captures the credentials sent to the login endpoint.
// Username may also hold the account email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and the signed-in user.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresAt   time.Time      `json:"expires_at"`
	User        *users.UserDTO `json:"user"`
}

// AdminSeed describes the admin account created at boot when configured.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}
