package auth

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"claims-portal-api/config"
	"claims-portal-api/internal/util"

	"gorm.io/gorm"
)

const otpValidity = 10 * time.Minute

type AuthService struct {
	DB  *gorm.DB
	CFG *config.Config
}

var sendMail = smtp.SendMail

func (s *AuthService) CreateUser(user AdminUser) (*AdminUser, error) {
	if user.Role == "" {
		user.Role = RoleEditor
	}
	if !ValidRole(user.Role) {
		return nil, fmt.Errorf("unknown role: %s", user.Role)
	}

	if err := s.DB.Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "unique constraint") {
			return nil, errors.New("An account with this email already exists.")
		}
		return nil, err
	}

	return &user, nil
}

func (s *AuthService) GetUser(email string) (*AdminUser, error) {
	var user AdminUser
	result := s.DB.Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (s *AuthService) GetUserByID(id int) (*AdminUser, error) {
	var user AdminUser
	result := s.DB.Where("id = ?", id).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (s *AuthService) GetAllUsers() ([]AdminUser, error) {
	var users []AdminUser
	result := s.DB.Order("id ASC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *AuthService) SendOTP(email string) (*AdminUser, string, error) {
	var user AdminUser
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", errors.New("user not found")
	}

	otp := fmt.Sprintf("%06d", util.RandomInt(100000, 999999))

	record := OTP{
		Email: email,
		Code:  otp,
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return nil, "", err
	}

	from := s.CFG.GmailUser
	password := s.CFG.GmailPass
	to := []string{user.Email}
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	subject := "OTP to change password"
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your OTP to change the password is: %s\n\n"+
			"This code will expire in 10 minutes.\n\n"+
			"Settlement Claims Portal",
		user.FirstName, otp,
	)
	msg := []byte("Subject: " + subject + "\r\n\r\n" + body)

	authn := smtp.PlainAuth("", from, password, smtpHost)
	if err := sendMail(smtpHost+":"+smtpPort, authn, from, to, msg); err != nil {
		return nil, "", fmt.Errorf("failed to send OTP email: %w", err)
	}

	return &user, otp, nil
}

func (s *AuthService) ResetPassword(email, otp, newPassword string) error {
	var record OTP
	err := s.DB.
		Where("email = ? AND code = ?", email, otp).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return errors.New("invalid OTP")
	}

	if time.Since(record.CreatedAt) > otpValidity {
		return errors.New("OTP has expired")
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.DB.Model(&AdminUser{}).
		Where("email = ?", email).
		Update("password", hashed).Error; err != nil {
		return err
	}

	// burn every code issued for this email
	return s.DB.Where("email = ?", email).Delete(&OTP{}).Error
}
