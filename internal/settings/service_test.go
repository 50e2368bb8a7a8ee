package settings

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *SettingsService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&ClaimsSettings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return &SettingsService{DB: db}
}

func setClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}

func TestGet_CreatesDefaultOpenState(t *testing.T) {
	svc := newTestService(t)

	s, err := svc.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !s.ClaimsEnabled || s.Version != 1 {
		t.Fatalf("s=%+v", s)
	}

	enabled, message, err := svc.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if !enabled || message != "" {
		t.Fatalf("enabled=%v message=%q", enabled, message)
	}
}

func TestSetEnabled_VersionGuard(t *testing.T) {
	svc := newTestService(t)

	s, _ := svc.Get()

	updated, err := svc.SetEnabled(false, "Filing closes for review", s.Version, 7)
	if err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	if updated.ClaimsEnabled || updated.Version != s.Version+1 {
		t.Fatalf("updated=%+v", updated)
	}

	// stale token loses
	_, err = svc.SetEnabled(true, "", s.Version, 7)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("err=%v", err)
	}

	enabled, message, _ := svc.Current()
	if enabled || message != "Filing closes for review" {
		t.Fatalf("enabled=%v message=%q", enabled, message)
	}
}

func TestSchedule_AppliesLazilyOnRead(t *testing.T) {
	svc := newTestService(t)

	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	setClock(t, base)

	s, _ := svc.Get()
	at := base.Add(time.Hour)

	s, err := svc.Schedule(at, false, s.Version, 7)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if s.ScheduledOn == nil || s.ScheduledState == nil || *s.ScheduledState != false {
		t.Fatalf("s=%+v", s)
	}

	// before the deadline nothing changes
	enabled, _, _ := svc.Current()
	if !enabled {
		t.Fatalf("toggle applied early")
	}

	// past the deadline the next read flips the state and clears the slot
	setClock(t, at.Add(time.Minute))
	enabled, _, _ = svc.Current()
	if enabled {
		t.Fatalf("toggle not applied")
	}

	s, _ = svc.Get()
	if s.ScheduledOn != nil || s.ScheduledState != nil {
		t.Fatalf("slot not cleared: %+v", s)
	}
}

func TestSchedule_ReplacesPendingSlot(t *testing.T) {
	svc := newTestService(t)

	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	setClock(t, base)

	s, _ := svc.Get()
	s, err := svc.Schedule(base.Add(time.Hour), false, s.Version, 7)
	if err != nil {
		t.Fatalf("first Schedule: %v", err)
	}

	later := base.Add(48 * time.Hour)
	s, err = svc.Schedule(later, true, s.Version, 7)
	if err != nil {
		t.Fatalf("second Schedule: %v", err)
	}
	if !s.ScheduledOn.Equal(later) || *s.ScheduledState != true {
		t.Fatalf("s=%+v", s)
	}
}

func TestSchedule_RejectsPast(t *testing.T) {
	svc := newTestService(t)

	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	setClock(t, base)

	s, _ := svc.Get()
	_, err := svc.Schedule(base.Add(-time.Minute), false, s.Version, 7)
	if !errors.Is(err, ErrScheduleInPast) {
		t.Fatalf("err=%v", err)
	}
}

func TestCancelSchedule(t *testing.T) {
	svc := newTestService(t)

	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	setClock(t, base)

	s, _ := svc.Get()

	// nothing pending
	_, err := svc.CancelSchedule(s.Version, 7)
	if !errors.Is(err, ErrNoSchedule) {
		t.Fatalf("err=%v", err)
	}

	s, err = svc.Schedule(base.Add(time.Hour), false, s.Version, 7)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	s, err = svc.CancelSchedule(s.Version, 7)
	if err != nil {
		t.Fatalf("CancelSchedule: %v", err)
	}
	if s.ScheduledOn != nil {
		t.Fatalf("slot not cleared: %+v", s)
	}

	// the cancelled toggle never fires
	setClock(t, base.Add(2*time.Hour))
	enabled, _, _ := svc.Current()
	if !enabled {
		t.Fatalf("cancelled toggle applied")
	}
}
