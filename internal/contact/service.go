package contact

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"claims-portal-api/config"

	"gorm.io/gorm"
)

var (
	ErrMissingFields   = errors.New("name, email and message are required")
	ErrMessageNotFound = errors.New("message not found")
)

var sendMail = smtp.SendMail

type ContactService struct {
	DB  *gorm.DB
	CFG *config.Config
}

// Submit stores the message and forwards it to the settlement inbox. The
// email is best effort: a mail outage must not lose the message, the row
// is the system of record.
func (cs *ContactService) Submit(req ContactRequest) (*ContactMessage, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	body := strings.TrimSpace(req.Body)
	if name == "" || email == "" || body == "" {
		return nil, ErrMissingFields
	}

	msg := ContactMessage{
		Name:      name,
		Email:     email,
		ClaimCode: strings.TrimSpace(req.ClaimCode),
		Subject:   strings.TrimSpace(req.Subject),
		Body:      body,
	}
	if err := cs.DB.Create(&msg).Error; err != nil {
		return nil, err
	}

	cs.forward(&msg)

	return &msg, nil
}

func (cs *ContactService) forward(msg *ContactMessage) {
	if cs.CFG == nil || cs.CFG.GmailUser == "" || cs.CFG.ContactInbox == "" {
		return
	}

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"
	from := cs.CFG.GmailUser
	to := []string{cs.CFG.ContactInbox}

	subject := msg.Subject
	if subject == "" {
		subject = "New claimant message"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Subject: [Claims portal] %s\r\n", subject)
	fmt.Fprintf(&b, "To: %s\r\n", cs.CFG.ContactInbox)
	fmt.Fprintf(&b, "Reply-To: %s\r\n\r\n", msg.Email)
	fmt.Fprintf(&b, "From: %s <%s>\r\n", msg.Name, msg.Email)
	if msg.ClaimCode != "" {
		fmt.Fprintf(&b, "Claim code: %s\r\n", msg.ClaimCode)
	}
	fmt.Fprintf(&b, "\r\n%s\r\n", msg.Body)

	authn := smtp.PlainAuth("", cs.CFG.GmailUser, cs.CFG.GmailPass, smtpHost)
	_ = sendMail(smtpHost+":"+smtpPort, authn, from, to, []byte(b.String()))
}

func (cs *ContactService) List(input ListMessagesInput) ([]ContactMessage, int64, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	q := cs.DB.Model(&ContactMessage{})
	if input.Unread != nil {
		q = q.Where("is_read = ?", !*input.Unread)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []ContactMessage
	err := q.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (cs *ContactService) MarkRead(id uint) (*ContactMessage, error) {
	var msg ContactMessage
	if err := cs.DB.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	if !msg.IsRead {
		if err := cs.DB.Model(&msg).Update("is_read", true).Error; err != nil {
			return nil, err
		}
		msg.IsRead = true
	}

	return &msg, nil
}
