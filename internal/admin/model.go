package admin

import "time"

type DashboardStats struct {
	TotalClaims      int64            `json:"total_claims"`
	ActiveClaims     int64            `json:"active_claims"`
	UsedClaims       int64            `json:"used_claims"`
	DraftCount       int64            `json:"draft_count"`
	SubmittedCount   int64            `json:"submitted_count"`
	DocumentCount    int64            `json:"document_count"`
	DocumentBytes    int64            `json:"document_bytes"`
	UnreadMessages   int64            `json:"unread_messages"`
	SubmittedLast24h int64            `json:"submitted_last_24h"`
	SubmittedLast7d  int64            `json:"submitted_last_7d"`
	CategoryCounts   map[string]int64 `json:"category_counts"`
}

type ExportInput struct {
	Status string     `form:"status"` // all|draft|submitted
	Format string     `form:"format"` // csv|xlsx
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
}

type exportRow struct {
	Code        string
	Status      string
	Categories  []string
	SubmittedAt *time.Time
	UpdatedAt   time.Time
	FormData    []byte
}
