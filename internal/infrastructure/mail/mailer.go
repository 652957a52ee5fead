package mail

import (
	"fmt"

	gomail "github.com/go-mail/mail/v2"
)

// Config captures the SMTP settings for outgoing notifications.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// Mailer sends plain-text notification e-mails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	sender string
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		sender: cfg.Sender,
	}
}

// Send delivers a single message. Each call dials a fresh SMTP session;
// the dispatcher in front of this keeps delivery off the request path.
func (m *Mailer) Send(toAddress, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", toAddress)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", toAddress, err)
	}
	return nil
}
