package settings

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrVersionConflict = errors.New("settings changed since you loaded them, reload and retry")
	ErrNoSchedule      = errors.New("no toggle is scheduled")
	ErrScheduleInPast  = errors.New("scheduled time must be in the future")
)

// timeNow is swapped in tests to step the clock past a scheduled toggle.
var timeNow = time.Now

type SettingsService struct {
	DB *gorm.DB
}

// load returns the settings row, creating the default open state on first
// use, with any due scheduled toggle applied first.
func (ss *SettingsService) load() (*ClaimsSettings, error) {
	var s ClaimsSettings
	err := ss.DB.First(&s, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = ClaimsSettings{ID: 1, ClaimsEnabled: true, Version: 1}
		if err := ss.DB.Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}

	if applied, err := ss.applyDueSchedule(&s); err != nil {
		return nil, err
	} else if applied {
		if err := ss.DB.First(&s, 1).Error; err != nil {
			return nil, err
		}
	}

	return &s, nil
}

// applyDueSchedule flips the toggle if the scheduled moment has passed. The
// version guard makes the flip idempotent under concurrent readers: only one
// of them wins the update, the rest re-read.
func (ss *SettingsService) applyDueSchedule(s *ClaimsSettings) (bool, error) {
	if s.ScheduledOn == nil || s.ScheduledState == nil {
		return false, nil
	}
	if timeNow().Before(*s.ScheduledOn) {
		return false, nil
	}

	res := ss.DB.Model(&ClaimsSettings{}).
		Where("id = ? AND version = ?", s.ID, s.Version).
		Updates(map[string]interface{}{
			"claims_enabled":  *s.ScheduledState,
			"scheduled_on":    nil,
			"scheduled_state": nil,
			"version":         s.Version + 1,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return true, nil
}

func (ss *SettingsService) Get() (*ClaimsSettings, error) {
	return ss.load()
}

// Current implements the filing status check used by the claim code gate.
func (ss *SettingsService) Current() (bool, string, error) {
	s, err := ss.load()
	if err != nil {
		return false, "", err
	}
	return s.ClaimsEnabled, s.ClosedMessage, nil
}

// SetEnabled flips the portal open or closed. The caller's version token
// must match the stored row.
func (ss *SettingsService) SetEnabled(enabled bool, closedMessage string, version int, actorID uint) (*ClaimsSettings, error) {
	s, err := ss.load()
	if err != nil {
		return nil, err
	}

	res := ss.DB.Model(&ClaimsSettings{}).
		Where("id = ? AND version = ?", s.ID, version).
		Updates(map[string]interface{}{
			"claims_enabled": enabled,
			"closed_message": closedMessage,
			"version":        version + 1,
			"updated_by":     actorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	return ss.Get()
}

// Schedule stores a future toggle. There is one slot: scheduling again
// replaces whatever was pending, and the activity log keeps the history.
func (ss *SettingsService) Schedule(at time.Time, enabled bool, version int, actorID uint) (*ClaimsSettings, error) {
	if !at.After(timeNow()) {
		return nil, ErrScheduleInPast
	}

	s, err := ss.load()
	if err != nil {
		return nil, err
	}

	res := ss.DB.Model(&ClaimsSettings{}).
		Where("id = ? AND version = ?", s.ID, version).
		Updates(map[string]interface{}{
			"scheduled_on":    at,
			"scheduled_state": enabled,
			"version":         version + 1,
			"updated_by":      actorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	return ss.Get()
}

// CancelSchedule clears the pending toggle, if any.
func (ss *SettingsService) CancelSchedule(version int, actorID uint) (*ClaimsSettings, error) {
	s, err := ss.load()
	if err != nil {
		return nil, err
	}
	if s.ScheduledOn == nil {
		return nil, ErrNoSchedule
	}

	res := ss.DB.Model(&ClaimsSettings{}).
		Where("id = ? AND version = ?", s.ID, version).
		Updates(map[string]interface{}{
			"scheduled_on":    nil,
			"scheduled_state": nil,
			"version":         version + 1,
			"updated_by":      actorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	return ss.Get()
}
