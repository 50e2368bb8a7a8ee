package settings

import "time"

// ClaimsSettings is a single row table. Version is bumped on every write so
// two admins editing at once cannot silently clobber each other.
type ClaimsSettings struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ClaimsEnabled  bool       `gorm:"not null;default:true" json:"claims_enabled"`
	ClosedMessage  string     `gorm:"size:500" json:"closed_message"`
	Version        int        `gorm:"not null;default:1" json:"version"`
	ScheduledOn    *time.Time `json:"scheduled_on,omitempty"`
	ScheduledState *bool      `json:"scheduled_state,omitempty"`
	UpdatedBy      *uint      `json:"updated_by,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (ClaimsSettings) TableName() string {
	return "claims_settings"
}

type ToggleRequest struct {
	Enabled       *bool  `json:"enabled" binding:"required"`
	ClosedMessage string `json:"closed_message"`
	Version       int    `json:"version" binding:"required"`
}

type ScheduleRequest struct {
	At      time.Time `json:"at" binding:"required"`
	Enabled *bool     `json:"enabled" binding:"required"`
	Version int       `json:"version" binding:"required"`
}

type StatusResponse struct {
	ClaimsEnabled bool   `json:"claims_enabled"`
	ClosedMessage string `json:"closed_message,omitempty"`
}
