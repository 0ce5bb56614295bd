package dto

import "github.com/sahabhq/console/internal/access"

// BackupScheduleRequest represents a backup schedule preference update
type BackupScheduleRequest struct {
	Frequency string `json:"frequency" binding:"required,oneof=off daily weekly"`
	Hour      int    `json:"hour" binding:"min=0,max=23"`
}

// PreferenceRequest represents a single preference value update
type PreferenceRequest struct {
	Value string `json:"value" binding:"required"`
}

// UpsertAdminRequest represents a limited admin create or update
// request. The password is required on create and optional on update.
type UpsertAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password"`
	access.LimitedAdminProfile
}
