package mailer

import (
	"crypto/tls"
	"time"

	mail "gopkg.in/mail.v2"
)

// Sender доставляет готовые письма
type Sender interface {
	DialAndSend(m ...*mail.Message) error
}

// SMTPConfig параметры SMTP сервера
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
	// StartTLS принудительно требует STARTTLS
	StartTLS bool
}

// NewSMTPSender создает отправителя поверх gomail Dialer
func NewSMTPSender(cfg SMTPConfig) *mail.Dialer {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.Timeout > 0 {
		d.Timeout = cfg.Timeout
	}
	if cfg.StartTLS {
		d.StartTLSPolicy = mail.MandatoryStartTLS
	}
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	return d
}
