package contact

import (
	"errors"
	"net/smtp"
	"testing"

	"claims-portal-api/config"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *ContactService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&ContactMessage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return &ContactService{DB: db, CFG: &config.Config{
		GmailUser:    "portal@example.com",
		GmailPass:    "app-password",
		ContactInbox: "claims-team@example.com",
	}}
}

func captureMail(t *testing.T) *[][]byte {
	t.Helper()

	var sent [][]byte
	orig := sendMail
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, msg)
		return nil
	}
	t.Cleanup(func() { sendMail = orig })
	return &sent
}

func TestSubmit_StoresAndForwards(t *testing.T) {
	svc := newTestService(t)
	sent := captureMail(t)

	msg, err := svc.Submit(ContactRequest{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		ClaimCode: "2xQ9YNw",
		Subject:   "Question about my claim",
		Body:      "When will payments go out?",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if msg.ID == 0 || msg.IsRead {
		t.Fatalf("msg=%+v", msg)
	}
	if len(*sent) != 1 {
		t.Fatalf("sent=%d", len(*sent))
	}
}

func TestSubmit_MailFailureStillStores(t *testing.T) {
	svc := newTestService(t)

	orig := sendMail
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("smtp down")
	}
	t.Cleanup(func() { sendMail = orig })

	msg, err := svc.Submit(ContactRequest{Name: "Jane", Email: "j@x.com", Body: "hello"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	var row ContactMessage
	if err := svc.DB.First(&row, msg.ID).Error; err != nil {
		t.Fatalf("row missing: %v", err)
	}
}

func TestSubmit_MissingFields(t *testing.T) {
	svc := newTestService(t)
	captureMail(t)

	_, err := svc.Submit(ContactRequest{Name: "  ", Email: "j@x.com", Body: "hi"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("err=%v", err)
	}
}

func TestList_UnreadFilterAndMarkRead(t *testing.T) {
	svc := newTestService(t)
	captureMail(t)

	first, _ := svc.Submit(ContactRequest{Name: "A", Email: "a@x.com", Body: "one"})
	if _, err := svc.Submit(ContactRequest{Name: "B", Email: "b@x.com", Body: "two"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.MarkRead(first.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	unread := true
	msgs, total, err := svc.List(ListMessagesInput{Unread: &unread})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(msgs) != 1 || msgs[0].Email != "b@x.com" {
		t.Fatalf("msgs=%+v total=%d", msgs, total)
	}

	// idempotent
	again, err := svc.MarkRead(first.ID)
	if err != nil || !again.IsRead {
		t.Fatalf("again=%+v err=%v", again, err)
	}

	if _, err := svc.MarkRead(999); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("err=%v", err)
	}
}
