package logs

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"claims-portal-api/internal/util"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type LogService struct {
	DB *gorm.DB
}

func (ls *LogService) Log(entry ActivityLog, metadata interface{}) error {
	var metaStr *string

	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			str := string(b)
			metaStr = &str
		}
	}

	newLog := ActivityLog{
		Level:     entry.Level,
		Module:    entry.Module,
		ActorID:   entry.ActorID,
		Action:    entry.Action,
		Message:   entry.Message,
		ClaimCode: entry.ClaimCode,
		Tags:      entry.Tags,
		Metadata:  metaStr,
		CreatedAt: time.Now(),
	}

	return ls.DB.Create(&newLog).Error
}

func (ls *LogService) GetLogs(input LogFilterInput) ([]LogRow, LogAggregates, int64, int, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 || input.PageSize > 100 {
		input.PageSize = 20
	}

	base := ls.DB.
		Table("activity_logs").
		Select("activity_logs.*, u.firstname as firstname, u.lastname as lastname").
		Joins("LEFT JOIN admin_users u ON activity_logs.actor_id = u.id")

	// Default: last 30 days if no dates
	if input.StartDate == nil && input.EndDate == nil {
		base = base.Where("activity_logs.created_at >= ?", time.Now().AddDate(0, 0, -30))
	}

	if input.ActorID != nil {
		base = base.Where("activity_logs.actor_id = ?", *input.ActorID)
	}
	if input.Level != nil && strings.TrimSpace(*input.Level) != "" {
		base = base.Where("activity_logs.level = ?", strings.TrimSpace(*input.Level))
	}
	if input.Module != nil && strings.TrimSpace(*input.Module) != "" {
		base = base.Where("activity_logs.module = ?", strings.TrimSpace(*input.Module))
	}
	if input.Action != nil && strings.TrimSpace(*input.Action) != "" {
		base = base.Where("activity_logs.action = ?", strings.TrimSpace(*input.Action))
	}
	if input.ClaimCode != nil && strings.TrimSpace(*input.ClaimCode) != "" {
		base = base.Where("activity_logs.claim_code = ?", strings.TrimSpace(*input.ClaimCode))
	}
	if len(input.Tags) > 0 {
		base = base.Where("activity_logs.tags && ?", pq.Array(input.Tags))
	}

	start, hasStart, endExclusive, hasEnd, err := util.ParseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}
	if hasStart {
		base = base.Where("activity_logs.created_at >= ?", start)
	}
	if hasEnd {
		base = base.Where("activity_logs.created_at < ?", endExclusive)
	}

	if input.Search != nil && strings.TrimSpace(*input.Search) != "" {
		like := "%" + strings.TrimSpace(*input.Search) + "%"
		base = base.Where(
			`CAST(activity_logs.id AS TEXT) ILIKE ?
			 OR activity_logs.level ILIKE ?
			 OR activity_logs.module ILIKE ?
			 OR activity_logs.action ILIKE ?
			 OR activity_logs.message ILIKE ?
			 OR COALESCE(activity_logs.claim_code,'') ILIKE ?
			 OR COALESCE(u.firstname,'') ILIKE ?
			 OR COALESCE(u.lastname,'') ILIKE ?`,
			like, like, like, like, like, like, like, like,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(input.PageSize)))
	if totalPages == 0 {
		totalPages = 1
	}

	var rows []LogRow
	if err := base.
		Session(&gorm.Session{}).
		Order("activity_logs.created_at DESC").
		Limit(input.PageSize).
		Offset((input.Page - 1) * input.PageSize).
		Scan(&rows).Error; err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}

	aggs, err := ls.getAggregatesFromBase(base)
	if err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}

	return rows, aggs, total, totalPages, nil
}

func (ls *LogService) getAggregatesFromBase(base *gorm.DB) (LogAggregates, error) {
	aggs := LogAggregates{}
	limit := 12

	sub := base.Session(&gorm.Session{}).
		Select("activity_logs.module, activity_logs.action, activity_logs.actor_id, u.firstname, u.lastname")

	derived := ls.DB.Table("(?) as x", sub)

	{
		type r struct {
			Label string
			Count int64
		}
		var out []r

		if err := derived.Session(&gorm.Session{}).
			Select("x.module AS label, COUNT(*) AS count").
			Group("label").
			Order("count DESC").
			Limit(limit).
			Scan(&out).Error; err != nil {
			return LogAggregates{}, err
		}

		aggs.ByModule = make([]AggItem, 0, len(out))
		for _, row := range out {
			aggs.ByModule = append(aggs.ByModule, AggItem{Label: row.Label, Count: row.Count})
		}
	}

	{
		type r struct {
			Label string
			Count int64
		}
		var out []r

		if err := derived.Session(&gorm.Session{}).
			Select("x.action AS label, COUNT(*) AS count").
			Group("label").
			Order("count DESC").
			Limit(limit).
			Scan(&out).Error; err != nil {
			return LogAggregates{}, err
		}

		aggs.ByAction = make([]AggItem, 0, len(out))
		for _, row := range out {
			aggs.ByAction = append(aggs.ByAction, AggItem{Label: row.Label, Count: row.Count})
		}
	}

	{
		type r struct {
			ActorID   *uint
			Firstname string
			Lastname  string
			Label     string
			Count     int64
		}
		var out []r

		if err := derived.Session(&gorm.Session{}).
			Select(`
				x.actor_id,
				COALESCE(x.firstname,'') AS firstname,
				COALESCE(x.lastname,'') AS lastname,
				CASE
					WHEN (COALESCE(x.firstname,'') = '' AND COALESCE(x.lastname,'') = '')
					THEN 'System'
					ELSE TRIM(COALESCE(x.firstname,'') || ' ' || COALESCE(x.lastname,''))
				END AS label,
				COUNT(*) AS count
			`).
			Group("x.actor_id, firstname, lastname, label").
			Order("count DESC").
			Limit(limit).
			Scan(&out).Error; err != nil {
			return LogAggregates{}, err
		}

		aggs.ByActor = make([]ActorAggItem, 0, len(out))
		for _, row := range out {
			aggs.ByActor = append(aggs.ByActor, ActorAggItem{
				ActorID:   row.ActorID,
				FirstName: row.Firstname,
				LastName:  row.Lastname,
				Label:     row.Label,
				Count:     row.Count,
			})
		}
	}

	return aggs, nil
}

// RecentActivity returns the newest rows without filters, for the dashboard
// feed.
func (ls *LogService) RecentActivity(limit int) ([]LogRow, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	var rows []LogRow
	err := ls.DB.
		Table("activity_logs").
		Select("activity_logs.*, u.firstname as firstname, u.lastname as lastname").
		Joins("LEFT JOIN admin_users u ON activity_logs.actor_id = u.id").
		Order("activity_logs.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
