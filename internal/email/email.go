package email

import (
	"fmt"

	"buildlink_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Provider sends transactional mail. Implementations must be safe for
// concurrent use; delivery is best-effort and callers never roll back domain
// writes on a send failure.
type Provider interface {
	Send(to, subject, htmlBody string) error
}

type smtpProvider struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPProvider(cfg *config.Config) Provider {
	d := gomail.NewDialer(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUsername,
		cfg.Email.SMTPPassword,
	)

	from := cfg.Email.FromEmail
	if cfg.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.Email.FromName, cfg.Email.FromEmail)
	}

	return &smtpProvider{dialer: d, from: from}
}

func (p *smtpProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return p.dialer.DialAndSend(m)
}
