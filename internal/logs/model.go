package logs

import (
	"time"

	"github.com/lib/pq"
)

type ActivityLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Level     string         `gorm:"size:20;not null" json:"level"`
	Module    string         `gorm:"size:100;not null" json:"module"`
	ActorID   *uint          `gorm:"index" json:"actor_id,omitempty"`
	Action    string         `gorm:"size:255;not null" json:"action"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	ClaimCode *string        `gorm:"size:64;index" json:"claim_code,omitempty"`
	Tags      pq.StringArray `gorm:"type:text[];column:tags" json:"tags"`
	Metadata  *string        `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

type LogFilterInput struct {
	ActorID   *uint    `json:"actor_id"`
	Level     *string  `json:"level"`
	Module    *string  `json:"module"`
	Action    *string  `json:"action"`
	ClaimCode *string  `json:"claim_code"`
	Tags      []string `json:"tags"`

	StartDate *string `json:"start_date"` // "YYYY-MM-DD"
	EndDate   *string `json:"end_date"`   // "YYYY-MM-DD"

	Search   *string `json:"search"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

type AggItem struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type ActorAggItem struct {
	ActorID   *uint  `json:"actor_id,omitempty"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Label     string `json:"label"`
	Count     int64  `json:"count"`
}

type LogAggregates struct {
	ByModule []AggItem      `json:"by_module"`
	ByAction []AggItem      `json:"by_action"`
	ByActor  []ActorAggItem `json:"by_actor"`
}

type LogRow struct {
	ActivityLog
	FirstName string `json:"firstname" gorm:"column:firstname"`
	LastName  string `json:"lastname" gorm:"column:lastname"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
