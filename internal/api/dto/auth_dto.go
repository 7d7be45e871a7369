package dto

import (
	"time"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Username string      `json:"username" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     domain.Role `json:"role"`
}

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse renders an account without secrets.
type UserResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// AuthResponse pairs the user with an access token.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// NewAuthResponse maps the domain types.
func NewAuthResponse(u *domain.User, token domain.Token) AuthResponse {
	return AuthResponse{
		User: UserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		},
		AccessToken: token.Value,
		ExpiresAt:   token.ExpiresAt,
	}
}
