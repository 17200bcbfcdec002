package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendDecisionNotice(toEmail, subject, body string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendDecisionNotice delivers one rendered workflow notification. The body
// arrives as plain text; line breaks are preserved in the HTML wrapper.
func (s *emailService) SendDecisionNotice(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)

	htmlBody := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<p>%s</p>
			<hr style="border: none; border-top: 1px solid #ddd;">
			<p style="font-size: 12px; color: #888;">This is an automated message from the lead management desk. Please do not reply.</p>
		</div>
	`, strings.ReplaceAll(body, "\n", "<br>"))

	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send decision notice to %s: %w", toEmail, err)
	}
	return nil
}
