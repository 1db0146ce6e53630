package services

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"servicehub/config"
)

// Notifier delivers transactional email. Dispatch failures are logged by
// callers and never abort the owning operation.
type Notifier interface {
	Send(to, subject, body string) error
}

// MailNotifier sends through the configured SMTP relay.
type MailNotifier struct{}

func (MailNotifier) Send(to, subject, body string) error {
	cfg := config.Load()
	port, _ := strconv.Atoi(cfg.SMTPPort)

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.EmailUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(cfg.SMTPHost, port, cfg.EmailUser, cfg.EmailPass)
	return d.DialAndSend(m)
}

// OTPEmailBody builds the verification-code email.
func OTPEmailBody(code string, ttlMinutes int) string {
	return fmt.Sprintf(`
		<p>Hello,</p>
		<p>Your verification code is:</p>
		<h2>%s</h2>
		<p>This code expires in %d minutes. If you did not request it, you can ignore this email.</p>
		<p>Best regards,</p>
		<p>The ServiceHub Team</p>
	`, code, ttlMinutes)
}

// ApprovalEmailBody builds the provider-approval notice.
func ApprovalEmailBody(name string) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! Your provider application has been approved.</p>
		<p>You can now sign in and start listing your services.</p>
		<p>Best regards,</p>
		<p>The ServiceHub Team</p>
	`, name)
}

// RejectionEmailBody builds the provider-rejection notice, carrying the
// admin's reason.
func RejectionEmailBody(name, reason string) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We are sorry to inform you that your provider application was not approved.</p>
		<p><strong>Reason:</strong> %s</p>
		<p>You are welcome to apply again once the issue has been addressed.</p>
		<p>Best regards,</p>
		<p>The ServiceHub Team</p>
	`, name, reason)
}
