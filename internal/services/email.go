package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"estatedesk/internal/config"
)

// EmailService handles sending emails
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// SendLeadNotification sends a templated lead alert to the admin inbox.
// rows are label/value pairs rendered in submission order.
func (s *EmailService) SendLeadNotification(to, formTitle string, rows [][2]string, message string, refID uint) error {
	subject := fmt.Sprintf("New %s - EstateDesk", formTitle)
	htmlBody := s.generateLeadEmailHTML(formTitle, rows, message, refID)
	textBody := s.generateLeadEmailText(formTitle, rows, message, refID)
	return s.SendHTMLEmail(to, subject, htmlBody, textBody)
}

func (s *EmailService) generateLeadEmailHTML(formTitle string, rows [][2]string, message string, refID uint) string {
	var fields strings.Builder
	for _, row := range rows {
		fields.WriteString(fmt.Sprintf("<p><strong>%s:</strong> %s</p>\n            ", row[0], row[1]))
	}

	messageBlock := ""
	if message != "" {
		messageBlock = fmt.Sprintf(`
        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #B45309; border-radius: 4px; margin: 20px 0;">
            <h3 style="color: #1C1917; margin-top: 0;">Message:</h3>
            <p style="white-space: pre-wrap;">%s</p>
        </div>`, message)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>New %s</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #B45309;">New %s</h2>

        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
            %s
        </div>
        %s
        <p style="color: #64748B; font-size: 14px;">
            Reference ID: #%d
        </p>
    </div>
</body>
</html>`, formTitle, formTitle, fields.String(), messageBlock, refID)
}

func (s *EmailService) generateLeadEmailText(formTitle string, rows [][2]string, message string, refID uint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New %s\n\n", formTitle)
	for _, row := range rows {
		fmt.Fprintf(&b, "%s: %s\n", row[0], row[1])
	}
	if message != "" {
		fmt.Fprintf(&b, "\nMessage:\n%s\n", message)
	}
	fmt.Fprintf(&b, "\nReference ID: #%d", refID)
	return b.String()
}

// SendHTMLEmail sends an HTML email with plain text fallback
func (s *EmailService) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if !s.cfg.Enabled {
		fmt.Printf("[EMAIL] Would send to %s: %s\n", to, subject)
		return nil
	}

	// Validate configuration
	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("email service not properly configured")
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	// Build multipart message
	boundary := "----=_NextPart_1234567890"

	headers := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n"

	message := headers +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		textBody + "\r\n"

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"Content-Transfer-Encoding: quoted-printable\r\n" +
			"\r\n" +
			htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
