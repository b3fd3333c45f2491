package dto

import (
	"time"

	"tradejournal/internal/domain"
)

// UserOutput represents user data in API responses
type UserOutput struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserOutput maps a domain user onto its API shape
func NewUserOutput(user *domain.User) *UserOutput {
	return &UserOutput{
		ID:        user.ID.String(),
		Username:  user.Username,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}

// CreateUserRequest represents the admin user-creation payload
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SetUserStatusRequest represents the account enable/disable payload
type SetUserStatusRequest struct {
	Status string `json:"status"`
}
