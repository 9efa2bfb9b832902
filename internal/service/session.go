package service

import (
	"time"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/Payphone-Digital/admin-panel/internal/dto"
	"github.com/Payphone-Digital/admin-panel/internal/model"
)

// Session is the authenticated caller. Middleware builds it from the bearer
// token and every service operation receives it explicitly.
type Session struct {
	UserID       string
	Email        string
	Name         string
	Role         string
	TokenVersion int
	ExpiresAt    time.Time
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == model.RoleAdmin
}

// LandingPath is where the UI sends a user after sign-in.
func LandingPath(role string) string {
	if role == model.RoleAdmin {
		return constants.LandingAdmin
	}
	return constants.LandingUser
}

func (s *Session) Response() dto.SessionResponse {
	return dto.SessionResponse{
		UserID:    s.UserID,
		Email:     s.Email,
		Name:      s.Name,
		Role:      s.Role,
		ExpiresAt: s.ExpiresAt,
		Redirect:  LandingPath(s.Role),
	}
}
