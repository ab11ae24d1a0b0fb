package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendOTPEmail(email, code string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendOTPEmail(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Verify Your Email - Blogsyte OTP Code")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; color: #333;">
			<h2 style="color: #4a90e2;">Blogsyte Email Verification</h2>
			<p>Dear User,</p>
			<p>Thank you for signing up on <strong>Blogsyte</strong>.</p>
			<p>Please use the following One-Time Password (OTP) to verify your email address:</p>
			<p style="font-size: 20px; font-weight: bold; color: #4a90e2;">%s</p>
			<p>This code is valid for <strong>5 minutes</strong>. Do not share it with anyone.</p>
			<p>If you did not request this, you can safely ignore this email.</p>
			<br/>
			<p>Best regards,</p>
			<p><strong>Blogsyte Team</strong></p>
		</div>
	`, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	return nil
}
