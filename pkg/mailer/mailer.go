package mailer

import (
	"warmup-monitor-backend/pkg/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends plain SMTP mail. It is a fire-and-forget side channel: callers
// treat a nil error as "delivered to the relay", nothing more.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       []string
}

func New(cfg *config.Config) *Mailer {
	from := cfg.AlertEmailFrom
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     from,
		to:       cfg.AlertEmailTo,
	}
}

// Enabled reports whether the mailer has enough configuration to send.
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.from != "" && len(m.to) > 0
}

func (m *Mailer) Send(subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}
