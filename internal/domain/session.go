package domain

import "github.com/google/uuid"

// Session is the explicit per-request identity established at login and torn
// down at logout. Every gated operation receives one; nothing reads ambient
// globals.
type Session struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// IsAdmin reports whether the session holds the admin role.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
