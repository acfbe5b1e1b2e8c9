package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/edutrack/apiserver/config"
)

// SMTPSender delivers email over plain SMTP.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender constructs a sender from SMTP config.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send composes an RFC 5322 message and submits it to the configured relay.
func (s *SMTPSender) Send(_ context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		s.cfg.From, to, subject, body,
	)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}
