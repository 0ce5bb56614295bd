package dto

import "github.com/sahabhq/console/internal/access"

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// RefreshResponse represents a token refresh response
type RefreshResponse struct {
	Token string `json:"token"`
}

// UserView is the resolved identity sent to the dashboard shell. The
// capability map drives which navigation entries the shell draws; the
// page-level guards re-check on every request regardless.
type UserView struct {
	ID           int64                       `json:"id"`
	Username     string                      `json:"username"`
	Email        string                      `json:"email"`
	IsSuperuser  bool                        `json:"is_superuser"`
	LimitedAdmin *access.LimitedAdminProfile `json:"limited_admin_profile,omitempty"`
	Capabilities map[access.Capability]bool  `json:"capabilities"`
}

// NewUserView builds the identity view from a resolved user.
func NewUserView(u *access.User) UserView {
	return UserView{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		IsSuperuser:  u.IsSuperuser,
		LimitedAdmin: u.LimitedAdmin,
		Capabilities: u.Capabilities(),
	}
}
