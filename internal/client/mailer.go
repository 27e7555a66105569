package client

import (
	"kingtech-store/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends transactional mail through the configured SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

func NewSMTPMailer(cfg *config.SMTP) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		sender: cfg.Sender,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	from := m.sender
	if from == "" {
		from = m.dialer.Username
	}
	msg.SetAddressHeader("From", from, "Support")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
