package contact

import "time"

type ContactMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	ClaimCode string    `gorm:"size:64" json:"claim_code,omitempty"`
	Subject   string    `gorm:"size:200" json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

type ContactRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	ClaimCode string `json:"claim_code"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type ListMessagesInput struct {
	Unread   *bool `json:"unread"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
