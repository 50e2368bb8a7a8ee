package claim

import (
	"time"
)

type Claim struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string     `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Title       string     `gorm:"type:text;not null;default:''" json:"title"`
	Description string     `gorm:"type:text;not null;default:''" json:"description"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	IsUsed      bool       `gorm:"not null;default:false" json:"is_used"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedBy   *uint      `gorm:"index" json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Claim) TableName() string {
	return "claims"
}

type ValidateCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

type CreateClaimsRequest struct {
	Count       int     `json:"count" binding:"required,min=1,max=1000"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ExpiresAt   *string `json:"expires_at"` // RFC3339, optional
}

type ListClaimsInput struct {
	Status   string `form:"status"` // all|active|used|inactive|expired
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
