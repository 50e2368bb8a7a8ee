package document

import "time"

type ClaimDocument struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code         string     `gorm:"size:64;not null;index" json:"code"`
	Category     string     `gorm:"size:40;not null" json:"category"`
	OriginalName string     `gorm:"size:255;not null" json:"original_name"`
	ObjectPath   string     `gorm:"size:512;not null" json:"-"`
	ContentType  string     `gorm:"size:100" json:"content_type"`
	SizeBytes    int64      `gorm:"not null" json:"size_bytes"`
	IsDeleted    bool       `gorm:"default:false" json:"is_deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (ClaimDocument) TableName() string {
	return "claim_documents"
}

type DocumentView struct {
	ID           uint      `json:"id"`
	Category     string    `json:"category"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

type SignedURLResponse struct {
	URL         string `json:"url"`
	PreviewKind string `json:"preview_kind"` // image|pdf|text|other
	ExpiresIn   int    `json:"expires_in_seconds"`
}

type AdminListInput struct {
	Code     *string `json:"code"`
	Category *string `json:"category"`
	Deleted  *bool   `json:"deleted"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

type AdminDocumentRow struct {
	ClaimDocument
	SubmissionStatus string `json:"submission_status" gorm:"column:submission_status"`
}
