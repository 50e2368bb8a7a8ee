package submission

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

// One row per claim: the unique index on claim_id is what guarantees at most
// one submitted record per code.
type ClaimSubmission struct {
	ID                 uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ClaimID            uint           `gorm:"not null;uniqueIndex" json:"claim_id"`
	Code               string         `gorm:"size:64;not null;index" json:"code"`
	FormData           datatypes.JSON `gorm:"type:jsonb" json:"form_data"`
	Status             string         `gorm:"size:20;not null;default:'draft'" json:"status"`
	SelectedCategories pq.StringArray `gorm:"type:text[];column:selected_categories" json:"selected_categories"`
	SubmittedAt        *time.Time     `json:"submitted_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (ClaimSubmission) TableName() string {
	return "claim_submissions"
}

type SaveDraftRequest struct {
	Form FormPayload `json:"form"`
}

type SubmitRequest struct {
	Form FormPayload `json:"form"`
}

type DraftResponse struct {
	Status      string      `json:"status"` // none|draft|submitted
	Form        FormPayload `json:"form"`
	Recovered   bool        `json:"recovered,omitempty"`
	SubmittedAt *time.Time  `json:"submitted_at,omitempty"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}
