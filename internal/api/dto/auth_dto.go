package dto

import (
	"time"

	"github.com/spec-kit/todo-service/internal/domain"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

// LoginRequest payload for returning accounts.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse pairs a bearer token with the public account view.
type TokenResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      domain.PublicUser `json:"user"`
}
