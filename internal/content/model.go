package content

import "time"

type ContentSection struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug      string    `gorm:"size:80;not null;uniqueIndex" json:"slug"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsVisible bool      `gorm:"not null;default:true" json:"is_visible"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	UpdatedBy *uint     `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ContentSection) TableName() string {
	return "content_sections"
}

type FAQ struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Question  string    `gorm:"size:500;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Category  string    `gorm:"size:80;index" json:"category"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsVisible bool      `gorm:"not null;default:true" json:"is_visible"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	UpdatedBy *uint     `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FAQ) TableName() string {
	return "faqs"
}

type ImportantDate struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Label     string    `gorm:"size:200;not null" json:"label"`
	Happens   time.Time `gorm:"not null" json:"happens"`
	Details   string    `gorm:"size:500" json:"details"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsVisible bool      `gorm:"not null;default:true" json:"is_visible"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	UpdatedBy *uint     `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ImportantDate) TableName() string {
	return "important_dates"
}

type SectionInput struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	SortOrder int    `json:"sort_order"`
	IsVisible *bool  `json:"is_visible"`
	Version   int    `json:"version"`
}

type FAQInput struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Category  string `json:"category"`
	SortOrder int    `json:"sort_order"`
	IsVisible *bool  `json:"is_visible"`
	Version   int    `json:"version"`
}

type DateInput struct {
	Label     string     `json:"label"`
	Happens   *time.Time `json:"happens"`
	Details   string     `json:"details"`
	SortOrder int        `json:"sort_order"`
	IsVisible *bool      `json:"is_visible"`
	Version   int        `json:"version"`
}
